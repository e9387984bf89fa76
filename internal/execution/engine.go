package execution

import (
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"taskpilot/internal/logging"
	"taskpilot/internal/models"
	"taskpilot/internal/tools"
)

// Engine runs submitted tasks on background goroutines, bounded by a
// concurrency semaphore. Every task ends in exactly one terminal state.
type Engine struct {
	store    *TaskStore
	registry *tools.Registry
	sem      chan struct{}
	onDone   func(task models.Task)
}

// NewEngine creates an engine that runs at most maxConcurrent tasks at once
func NewEngine(store *TaskStore, registry *tools.Registry, maxConcurrent int) *Engine {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Engine{
		store:    store,
		registry: registry,
		sem:      make(chan struct{}, maxConcurrent),
	}
}

// OnDone registers a callback invoked after a task reaches a terminal state.
// Used for metrics; must be set before the first Submit.
func (e *Engine) OnDone(fn func(task models.Task)) {
	e.onDone = fn
}

// Submit records a pending task and schedules it for execution. The returned
// snapshot always has status pending; poll the store for progress.
func (e *Engine) Submit(taskType string, parameters map[string]interface{}) models.Task {
	task := &models.Task{
		ID:         uuid.New().String(),
		Type:       taskType,
		Parameters: parameters,
		Status:     models.TaskStatusPending,
		CreatedAt:  time.Now(),
	}
	e.store.Put(task)

	slog.Info("task submitted", "task_id", task.ID, "task_type", taskType)

	go e.run(task.ID, taskType, parameters)

	pending, _ := e.store.Get(task.ID)
	return pending
}

func (e *Engine) run(taskID, taskType string, parameters map[string]interface{}) {
	e.sem <- struct{}{}
	defer func() { <-e.sem }()

	log := logging.WithTask(taskID, taskType)

	defer func() {
		if r := recover(); r != nil {
			log.Error("task panicked", "panic", r)
			_ = e.store.MarkFailed(taskID, fmt.Sprintf("task panicked: %v", r))
			e.notify(taskID)
		}
	}()

	if err := e.store.MarkRunning(taskID); err != nil {
		log.Error("task could not start", "error", err)
		return
	}

	tool, ok := e.registry.Get(taskType)
	if !ok {
		log.Error("unknown task type")
		_ = e.store.MarkFailed(taskID, fmt.Sprintf("Unknown task type: %s", taskType))
		e.notify(taskID)
		return
	}

	result, err := tool.Execute(parameters)
	if err != nil {
		log.Error("task failed", "error", err)
		_ = e.store.MarkFailed(taskID, err.Error())
	} else {
		log.Info("task completed")
		_ = e.store.MarkCompleted(taskID, result)
	}
	e.notify(taskID)
}

func (e *Engine) notify(taskID string) {
	if e.onDone == nil {
		return
	}
	if task, ok := e.store.Get(taskID); ok {
		e.onDone(task)
	}
}
