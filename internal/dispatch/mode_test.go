package dispatch

import (
	"strings"
	"testing"

	"taskpilot/internal/models"
)

func TestChatModeAllowsEverything(t *testing.T) {
	for _, intent := range models.IntentTypes {
		allowed, msg := ModeAllowed("chat", intent)
		if !allowed {
			t.Errorf("chat mode refused %q", intent)
		}
		if msg != "" {
			t.Errorf("chat mode returned refusal message for %q", intent)
		}
	}
}

func TestLockedModeRefusesOtherIntents(t *testing.T) {
	allowed, msg := ModeAllowed("file_operation", models.IntentScheduleReminder)
	if allowed {
		t.Fatal("file_operation mode allowed a reminder intent")
	}
	want := "I can only do file operations right now. Please ask about creating, reading, deleting, or managing files."
	if msg != want {
		t.Errorf("refusal = %q, want %q", msg, want)
	}
}

func TestLockedModeAllowsMatchingIntent(t *testing.T) {
	tests := map[string]models.IntentType{
		"file_operation":    models.IntentFileOperation,
		"schedule_reminder": models.IntentScheduleReminder,
		"run_script":        models.IntentRunScript,
		"search":            models.IntentSearch,
		"system_info":       models.IntentSystemInfo,
	}

	for mode, intent := range tests {
		if allowed, _ := ModeAllowed(mode, intent); !allowed {
			t.Errorf("mode %q refused its own intent %q", mode, intent)
		}
	}
}

func TestUnknownModeAllows(t *testing.T) {
	if allowed, _ := ModeAllowed("banana", models.IntentSearch); !allowed {
		t.Error("unrecognized mode should not refuse")
	}
}

func TestEveryModeHasRefusalMessage(t *testing.T) {
	for mode := range modeIntents {
		msg, ok := modeRefusals[mode]
		if !ok || !strings.HasPrefix(msg, "I can only") {
			t.Errorf("mode %q has no usable refusal message", mode)
		}
	}
}
