package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"log/slog"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// SchedulerService manages one-shot reminder jobs on a gocron scheduler
type SchedulerService struct {
	scheduler gocron.Scheduler
	mu        sync.RWMutex
	jobs      map[string]gocron.Job // reminderID -> job
}

// NewSchedulerService creates the scheduler; call Start before scheduling
func NewSchedulerService() (*SchedulerService, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.Local),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &SchedulerService{
		scheduler: scheduler,
		jobs:      make(map[string]gocron.Job),
	}, nil
}

// Start starts the scheduler
func (s *SchedulerService) Start() {
	log.Println("⏰ Starting scheduler service...")
	s.scheduler.Start()
	log.Println("✅ Scheduler service started")
}

// Stop stops the scheduler
func (s *SchedulerService) Stop() error {
	log.Println("⏹️ Stopping scheduler service...")
	return s.scheduler.Shutdown()
}

// ScheduleOneShot registers a reminder that fires once at the given time.
// A time in the past fires immediately.
func (s *SchedulerService) ScheduleOneShot(at time.Time, title string, notes string) (string, error) {
	reminderID := uuid.New().String()

	if !at.After(time.Now()) {
		at = time.Now().Add(time.Second)
	}

	job, err := s.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(func() {
			s.fire(reminderID, title, notes)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to schedule reminder: %w", err)
	}

	s.mu.Lock()
	s.jobs[reminderID] = job
	s.mu.Unlock()

	slog.Info("reminder scheduled", "reminder_id", reminderID, "title", title, "at", at)
	return reminderID, nil
}

func (s *SchedulerService) fire(reminderID, title, notes string) {
	slog.Info("reminder due", "reminder_id", reminderID, "title", title, "notes", notes)

	s.mu.Lock()
	delete(s.jobs, reminderID)
	s.mu.Unlock()
}

// PendingReminders returns the number of reminders not yet fired
func (s *SchedulerService) PendingReminders() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
