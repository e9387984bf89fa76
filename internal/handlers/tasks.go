package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskpilot/internal/execution"
	"taskpilot/internal/models"
)

// TaskHandler handles direct task submission and status lookups
type TaskHandler struct {
	engine *execution.Engine
	store  *execution.TaskStore
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(engine *execution.Engine, store *execution.TaskStore) *TaskHandler {
	return &TaskHandler{engine: engine, store: store}
}

// Submit queues a task for background execution
// POST /api/v1/tasks
func (h *TaskHandler) Submit(c *fiber.Ctx) error {
	var req models.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.TaskType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "task_type is required",
		})
	}

	task := h.engine.Submit(req.TaskType, req.Parameters)
	return c.Status(fiber.StatusAccepted).JSON(task)
}

// Get returns the current snapshot of a task
// GET /api/v1/tasks/:id
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	taskID := c.Params("id")

	task, ok := h.store.Get(taskID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	return c.JSON(task)
}

// List returns all known tasks
// GET /api/v1/tasks
func (h *TaskHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tasks": h.store.List(),
	})
}
