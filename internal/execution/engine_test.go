package execution

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"taskpilot/internal/models"
	"taskpilot/internal/tools"
)

func waitForTerminal(t *testing.T, store *TaskStore, id string) models.Task {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		task, ok := store.Get(id)
		if ok && task.Status.Terminal() {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("task %s never reached a terminal state", id)
	return models.Task{}
}

func echoTool() *tools.Tool {
	return &tools.Tool{
		Name:        "echo",
		Description: "returns its arguments",
		Execute: func(args map[string]interface{}) (map[string]interface{}, error) {
			return map[string]interface{}{"echo": args["value"]}, nil
		},
	}
}

func TestSubmitReturnsPendingSnapshot(t *testing.T) {
	store := NewTaskStore()
	registry := tools.NewRegistry()
	engine := NewEngine(store, registry, 2)

	task := engine.Submit("echo", nil)

	if task.ID == "" {
		t.Error("task ID is empty")
	}
	if task.Status != models.TaskStatusPending {
		t.Errorf("status = %q, want %q", task.Status, models.TaskStatusPending)
	}
	if task.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestUnknownTaskTypeFails(t *testing.T) {
	store := NewTaskStore()
	engine := NewEngine(store, tools.NewRegistry(), 2)

	task := engine.Submit("bogus", nil)
	done := waitForTerminal(t, store, task.ID)

	if done.Status != models.TaskStatusFailed {
		t.Errorf("status = %q, want %q", done.Status, models.TaskStatusFailed)
	}
	if done.Error != "Unknown task type: bogus" {
		t.Errorf("error = %q", done.Error)
	}
	if done.CompletedAt == nil {
		t.Error("CompletedAt not set on failed task")
	}
}

func TestTaskCompletesWithResult(t *testing.T) {
	store := NewTaskStore()
	registry := tools.NewRegistry()
	if err := registry.Register(echoTool()); err != nil {
		t.Fatal(err)
	}
	engine := NewEngine(store, registry, 2)

	task := engine.Submit("echo", map[string]interface{}{"value": "hi"})
	done := waitForTerminal(t, store, task.ID)

	if done.Status != models.TaskStatusCompleted {
		t.Fatalf("status = %q, want %q", done.Status, models.TaskStatusCompleted)
	}
	if done.Result["echo"] != "hi" {
		t.Errorf("result = %v", done.Result)
	}
}

func TestFailingToolMarksTaskFailed(t *testing.T) {
	store := NewTaskStore()
	registry := tools.NewRegistry()
	err := registry.Register(&tools.Tool{
		Name:        "broken",
		Description: "always fails",
		Execute: func(map[string]interface{}) (map[string]interface{}, error) {
			return nil, errors.New("out of cheese")
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	engine := NewEngine(store, registry, 2)

	task := engine.Submit("broken", nil)
	done := waitForTerminal(t, store, task.ID)

	if done.Status != models.TaskStatusFailed {
		t.Errorf("status = %q, want %q", done.Status, models.TaskStatusFailed)
	}
	if done.Error != "out of cheese" {
		t.Errorf("error = %q", done.Error)
	}
}

func TestPanickingToolMarksTaskFailed(t *testing.T) {
	store := NewTaskStore()
	registry := tools.NewRegistry()
	err := registry.Register(&tools.Tool{
		Name:        "volatile",
		Description: "panics",
		Execute: func(map[string]interface{}) (map[string]interface{}, error) {
			panic("boom")
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	engine := NewEngine(store, registry, 2)

	task := engine.Submit("volatile", nil)
	done := waitForTerminal(t, store, task.ID)

	if done.Status != models.TaskStatusFailed {
		t.Errorf("status = %q, want %q", done.Status, models.TaskStatusFailed)
	}
}

func TestOnDoneCallbackFires(t *testing.T) {
	store := NewTaskStore()
	registry := tools.NewRegistry()
	if err := registry.Register(echoTool()); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Int32
	engine := NewEngine(store, registry, 2)
	engine.OnDone(func(task models.Task) {
		if task.Status.Terminal() {
			fired.Add(1)
		}
	})

	task := engine.Submit("echo", nil)
	waitForTerminal(t, store, task.ID)

	deadline := time.Now().Add(time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if fired.Load() != 1 {
		t.Errorf("callback fired %d times, want 1", fired.Load())
	}
}

func TestConcurrencyBoundRespected(t *testing.T) {
	store := NewTaskStore()
	registry := tools.NewRegistry()

	var running, peak atomic.Int32
	err := registry.Register(&tools.Tool{
		Name:        "slow",
		Description: "tracks concurrency",
		Execute: func(map[string]interface{}) (map[string]interface{}, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(30 * time.Millisecond)
			running.Add(-1)
			return map[string]interface{}{}, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(store, registry, 2)

	var ids []string
	for i := 0; i < 6; i++ {
		ids = append(ids, engine.Submit("slow", nil).ID)
	}
	for _, id := range ids {
		waitForTerminal(t, store, id)
	}

	if peak.Load() > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak.Load())
	}
}

func TestStoreTerminalStatesAreWriteOnce(t *testing.T) {
	store := NewTaskStore()
	task := &models.Task{ID: "t1", Status: models.TaskStatusPending, CreatedAt: time.Now()}
	store.Put(task)

	if err := store.MarkRunning("t1"); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkCompleted("t1", nil); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkFailed("t1", "late failure"); err == nil {
		t.Error("terminal state was overwritten")
	}

	got, _ := store.Get("t1")
	if got.Status != models.TaskStatusCompleted {
		t.Errorf("status = %q, want %q", got.Status, models.TaskStatusCompleted)
	}
}

func TestStoreMarkRunningRequiresPending(t *testing.T) {
	store := NewTaskStore()
	task := &models.Task{ID: "t1", Status: models.TaskStatusPending, CreatedAt: time.Now()}
	store.Put(task)

	if err := store.MarkRunning("t1"); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkRunning("t1"); err == nil {
		t.Error("second MarkRunning should fail")
	}
	if err := store.MarkRunning("missing"); err == nil {
		t.Error("MarkRunning on unknown task should fail")
	}
}

func TestStoreGetReturnsSnapshot(t *testing.T) {
	store := NewTaskStore()
	task := &models.Task{
		ID:         "t1",
		Status:     models.TaskStatusPending,
		Parameters: map[string]interface{}{"k": "v"},
		CreatedAt:  time.Now(),
	}
	store.Put(task)

	got, _ := store.Get("t1")
	got.Parameters["k"] = "mutated"

	again, _ := store.Get("t1")
	if again.Parameters["k"] != "v" {
		t.Error("snapshot mutation leaked into the store")
	}
}
