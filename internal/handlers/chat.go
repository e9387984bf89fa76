package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskpilot/internal/models"
	"taskpilot/internal/services"
)

// ChatHandler handles chat and learning-feedback HTTP requests
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat processes one conversational message
// POST /api/v1/chat
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	response := h.chatService.ProcessMessage(req.Message, sessionID, req.Context)
	return c.JSON(response)
}

// Learn records explicit feedback about a classified interaction
// POST /api/v1/learn
func (h *ChatHandler) Learn(c *fiber.Ctx) error {
	var feedback models.LearningFeedback
	if err := c.BodyParser(&feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if feedback.Message == "" || feedback.ExpectedIntent == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message and expected_intent are required",
		})
	}

	h.chatService.RecordFeedback(feedback)
	return c.JSON(fiber.Map{
		"status": "feedback_recorded",
	})
}
