package nlp

import (
	"testing"
	"time"

	"taskpilot/internal/models"
)

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	anchor := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	return func() time.Time { return anchor }
}

func TestExtractQuotedFilePath(t *testing.T) {
	e := NewEntityExtractor()

	entities := e.Extract(`Create a file called "notes.txt" for me`)

	if got := FirstString(entities[KeyFilePath]); got != "notes.txt" {
		t.Errorf("file_path = %q, want %q", got, "notes.txt")
	}
	if got := FirstString(entities[KeyOperation]); got != "create" {
		t.Errorf("operation = %q, want %q", got, "create")
	}
}

func TestExtractTimeOfDay(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"remind me at 5pm", "17:00:00"},
		{"remind me at 5:30pm", "17:30:00"},
		{"meet at 14:30", "14:30:00"},
		{"wake me at 12am", "00:00:00"},
		{"lunch at 12pm", "12:00:00"},
		// a bare "at H" matches the pattern but resolves to nothing
		{"remind me at 5", ""},
		{"no time here", ""},
	}

	for _, tt := range tests {
		if got := extractTimeOfDay(tt.message); got != tt.want {
			t.Errorf("extractTimeOfDay(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestRelativeTimeWinsOverExplicitClockTime(t *testing.T) {
	e := NewEntityExtractor()
	e.now = fixedClock(t)

	entities := e.Extract("Remind me tomorrow at 5pm")

	// the relative phrase takes priority over the extracted clock time
	want := "2025-03-11T09:00:00"
	if got := FirstString(entities[KeyScheduledDatetime]); got != want {
		t.Errorf("scheduled_datetime = %q, want %q", got, want)
	}
	if got := FirstString(entities[KeyExtractedTime]); got != "17:00:00" {
		t.Errorf("extracted_time = %q, want %q", got, "17:00:00")
	}
}

func TestParseRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 45, 0, 0, time.Local)

	tests := []struct {
		phrase string
		want   string
	}{
		{"tomorrow", "2025-03-11T09:00:00"},
		{"today", "2025-03-10T14:00:00"},
		{"tonight", "2025-03-10T20:00:00"},
		{"later", "2025-03-10T16:45:00"},
		{"next week", "2025-03-17T09:00:00"},
		{"next month", "2025-04-09T09:00:00"},
	}

	for _, tt := range tests {
		if got := parseRelativeTime(tt.phrase, now); got != tt.want {
			t.Errorf("parseRelativeTime(%q) = %q, want %q", tt.phrase, got, tt.want)
		}
	}
}

func TestParseRelativeTimeTodayHalfHourZone(t *testing.T) {
	// zones with non-whole-hour offsets must still zero wall-clock minutes
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, 3, 10, 14, 45, 0, 0, ist)

	if got := parseRelativeTime("today", now); got != "2025-03-10T14:00:00" {
		t.Errorf("parseRelativeTime(today) = %q, want %q", got, "2025-03-10T14:00:00")
	}
}

func TestResolveOperation(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"delete the old report", "delete"},
		{"make me a new folder", "create"},
		{"please open it", "open"},
		{"copy that over", "copy"},
		{"rename this thing", "rename"},
		{"hello there", ""},
	}

	for _, tt := range tests {
		entities := models.Entities{}
		resolveOperation(tt.message, entities)

		got := FirstString(entities[KeyOperation])
		if got != tt.want {
			t.Errorf("resolveOperation(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestExtractMonthDate(t *testing.T) {
	e := NewEntityExtractor()

	entities := e.Extract("Schedule the review for January 15, 2025")

	if got := FirstString(entities[KeyExtractedDate]); got != "01/15/2025" {
		t.Errorf("extracted_date = %q, want %q", got, "01/15/2025")
	}
	if got := FirstString(entities[KeyScheduledDatetime]); got != "01/15/2025" {
		t.Errorf("scheduled_datetime = %q, want %q", got, "01/15/2025")
	}
}

func TestImpossibleCalendarDateRejected(t *testing.T) {
	e := NewEntityExtractor()

	entities := e.Extract("see you February 30, 2025")

	if _, ok := entities[KeyExtractedDate]; ok {
		t.Error("extracted_date set for an impossible date")
	}
	if _, ok := entities[KeyScheduledDatetime]; ok {
		t.Error("scheduled_datetime set for an impossible date")
	}
}

func TestExtractDateAndTimeCombined(t *testing.T) {
	e := NewEntityExtractor()

	// the date and raw time captures are joined verbatim
	entities := e.Extract("meeting on 2025-06-01 at 9:30am")

	want := "2025-06-01 9:30am"
	if got := FirstString(entities[KeyScheduledDatetime]); got != want {
		t.Errorf("scheduled_datetime = %q, want %q", got, want)
	}
}

func TestExtractEmptyMessage(t *testing.T) {
	e := NewEntityExtractor()

	entities := e.Extract("")
	if len(entities) != 0 {
		t.Errorf("Extract(\"\") produced %d entities, want 0", len(entities))
	}
}

func TestExtractScriptName(t *testing.T) {
	e := NewEntityExtractor()

	entities := e.Extract("run backup.py for me")
	if got := FirstString(entities[KeyScriptName]); got != "backup.py" {
		t.Errorf("script_name = %q, want %q", got, "backup.py")
	}
}
