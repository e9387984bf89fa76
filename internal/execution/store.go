package execution

import (
	"fmt"
	"sync"
	"time"

	"taskpilot/internal/models"
)

// TaskStore keeps every submitted task in memory, keyed by ID. The engine is
// the only writer of terminal states; readers always get a snapshot copy.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*models.Task),
	}
}

// Put registers a newly created task
func (s *TaskStore) Put(task *models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
}

// Get returns a copy of the task so callers never observe in-flight mutation
func (s *TaskStore) Get(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, false
	}
	return snapshot(task), true
}

// List returns copies of all known tasks
func (s *TaskStore) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, snapshot(task))
	}
	return out
}

// MarkRunning moves a pending task to running
func (s *TaskStore) MarkRunning(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task %s not found", id)
	}
	if task.Status != models.TaskStatusPending {
		return fmt.Errorf("task %s is %s, expected %s", id, task.Status, models.TaskStatusPending)
	}
	task.Status = models.TaskStatusRunning
	return nil
}

// MarkCompleted finalizes a task with its result. Terminal states are write-once.
func (s *TaskStore) MarkCompleted(id string, result map[string]interface{}) error {
	return s.finalize(id, models.TaskStatusCompleted, result, "")
}

// MarkFailed finalizes a task with an error message
func (s *TaskStore) MarkFailed(id string, errMsg string) error {
	return s.finalize(id, models.TaskStatusFailed, nil, errMsg)
}

func (s *TaskStore) finalize(id string, status models.TaskStatus, result map[string]interface{}, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task %s not found", id)
	}
	if task.Status.Terminal() {
		return fmt.Errorf("task %s is already %s", id, task.Status)
	}

	now := time.Now()
	task.Status = status
	task.Result = result
	task.Error = errMsg
	task.CompletedAt = &now
	return nil
}

func snapshot(task *models.Task) models.Task {
	copied := *task
	if task.Result != nil {
		copied.Result = make(map[string]interface{}, len(task.Result))
		for k, v := range task.Result {
			copied.Result[k] = v
		}
	}
	if task.Parameters != nil {
		copied.Parameters = make(map[string]interface{}, len(task.Parameters))
		for k, v := range task.Parameters {
			copied.Parameters[k] = v
		}
	}
	if task.CompletedAt != nil {
		t := *task.CompletedAt
		copied.CompletedAt = &t
	}
	return copied
}
