package models

import "time"

// TaskStatus tracks the lifecycle of an asynchronous task.
// Transitions are monotonic: pending -> running -> completed|failed.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// Terminal reports whether the status is an end state
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// Task is a unit of asynchronous, trackable work
type Task struct {
	ID          string                 `json:"task_id"`
	Type        string                 `json:"type"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
	Status      TaskStatus             `json:"status"`
	Result      map[string]interface{} `json:"result,omitempty"`
	Error       string                 `json:"error,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}

// TaskRequest is the request body for submitting a task
type TaskRequest struct {
	TaskType   string                 `json:"task_type"`
	Parameters map[string]interface{} `json:"parameters"`
}
