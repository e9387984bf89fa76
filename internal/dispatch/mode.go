package dispatch

import "taskpilot/internal/models"

// modeRefusals are returned when a mode-locked session receives an intent the
// active mode does not permit
var modeRefusals = map[string]string{
	"file_operation":    "I can only do file operations right now. Please ask about creating, reading, deleting, or managing files.",
	"schedule_reminder": "I can only schedule reminders right now. Please ask about setting reminders or alarms.",
	"run_script":        "I can only run scripts right now. Please ask about executing scripts or programs.",
	"search":            "I can only search right now. Please ask about finding files or information.",
	"system_info":       "I can only provide system information right now. Please ask about time, date, or system status.",
}

var modeIntents = map[string]models.IntentType{
	"file_operation":    models.IntentFileOperation,
	"schedule_reminder": models.IntentScheduleReminder,
	"run_script":        models.IntentRunScript,
	"search":            models.IntentSearch,
	"system_info":       models.IntentSystemInfo,
}

// ModeAllowed reports whether the classified intent may proceed under the
// active mode. When refused, the second return value carries the reply to
// send instead. The chat mode and unrecognized modes allow everything.
func ModeAllowed(activeMode string, intentType models.IntentType) (bool, string) {
	if activeMode == "chat" {
		return true, ""
	}

	expected, known := modeIntents[activeMode]
	if known && intentType != expected {
		msg, ok := modeRefusals[activeMode]
		if !ok {
			msg = "I can only handle specific tasks in this mode."
		}
		return false, msg
	}

	return true, ""
}
