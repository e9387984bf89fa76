package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"taskpilot/internal/services"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	conversations *services.ConversationManager
	scheduler     *services.SchedulerService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(conversations *services.ConversationManager, scheduler *services.SchedulerService) *HealthHandler {
	return &HealthHandler{conversations: conversations, scheduler: scheduler}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":            "healthy",
		"sessions":          h.conversations.SessionCount(),
		"pending_reminders": h.scheduler.PendingReminders(),
		"timestamp":         time.Now().Format(time.RFC3339),
	})
}
