package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskpilot/internal/services"
)

// ConversationHandler handles conversation history HTTP requests
type ConversationHandler struct {
	conversations *services.ConversationManager
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversations *services.ConversationManager) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// List returns recent conversations ordered by last activity
// GET /api/v1/conversations
func (h *ConversationHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	return c.JSON(fiber.Map{
		"conversations": h.conversations.GetRecentConversations(limit),
	})
}

// Get returns the retained history for one session
// GET /api/v1/conversations/:id
func (h *ConversationHandler) Get(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	conv, ok := h.conversations.GetConversation(sessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Conversation not found",
		})
	}

	return c.JSON(conv)
}

// Clear empties a session's history
// DELETE /api/v1/conversations/:id
func (h *ConversationHandler) Clear(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	if !h.conversations.Clear(sessionID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Conversation not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "cleared",
	})
}
