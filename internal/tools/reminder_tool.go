package tools

import (
	"fmt"
	"strings"
	"time"

	"log/slog"

	"taskpilot/internal/nlp"
)

// ReminderScheduler schedules one-shot reminder jobs. Implemented by the
// scheduler service; declared here so tools stay decoupled from it.
type ReminderScheduler interface {
	ScheduleOneShot(at time.Time, title string, notes string) (string, error)
}

var reminderTitleStopWords = map[string]struct{}{
	"remind": {}, "me": {}, "to": {}, "about": {}, "for": {},
	"at": {}, "tomorrow": {}, "today": {}, "later": {},
}

// NewReminderTool creates the reminder tool backed by the given scheduler
func NewReminderTool(scheduler ReminderScheduler) *Tool {
	return &Tool{
		Name:        "schedule_reminder",
		Description: "Schedule a one-shot reminder or calendar event",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The reminder text",
				},
				"scheduled_time": map[string]interface{}{
					"type":        "string",
					"description": "Due time in YYYY-MM-DDTHH:MM:SS format",
				},
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Either reminder or calendar",
				},
			},
			"required": []string{"message"},
		},
		Keywords: []string{"remind", "reminder", "schedule", "alarm", "event"},
		Execute: func(args map[string]interface{}) (map[string]interface{}, error) {
			return executeReminder(scheduler, args)
		},
	}
}

func executeReminder(scheduler ReminderScheduler, args map[string]interface{}) (map[string]interface{}, error) {
	message := stringArg(args, "message")
	if message == "" {
		message = "Reminder"
	}
	scheduledTime := stringArg(args, "scheduled_time")
	reminderType := stringArg(args, "type")
	if reminderType == "" {
		reminderType = "reminder"
	}

	dueAt := time.Now()
	if scheduledTime != "" {
		parsed, err := time.ParseInLocation(nlp.DatetimeLayout, scheduledTime, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid scheduled_time %q: %w", scheduledTime, err)
		}
		dueAt = parsed
	}

	title := extractReminderTitle(message)

	jobID, err := scheduler.ScheduleOneShot(dueAt, title, message)
	if err != nil {
		return nil, err
	}

	slog.Info("reminder scheduled",
		"title", title,
		"type", reminderType,
		"due_at", dueAt.Format(nlp.DatetimeLayout))

	return map[string]interface{}{
		"operation":      "reminder",
		"title":          title,
		"message":        message,
		"scheduled_time": dueAt.Format(nlp.DatetimeLayout),
		"type":           reminderType,
		"job_id":         jobID,
		"success":        true,
	}, nil
}

// extractReminderTitle strips filler words and keeps the first five remaining
// words as the reminder title
func extractReminderTitle(message string) string {
	var titleWords []string
	for _, word := range strings.Fields(message) {
		if _, skip := reminderTitleStopWords[strings.ToLower(word)]; skip {
			continue
		}
		titleWords = append(titleWords, word)
		if len(titleWords) == 5 {
			break
		}
	}

	if len(titleWords) > 0 {
		return strings.Join(titleWords, " ")
	}
	if len(message) > 50 {
		return message[:50]
	}
	return message
}
