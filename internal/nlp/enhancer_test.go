package nlp

import (
	"math"
	"testing"

	"taskpilot/internal/models"
)

func TestEnhanceAddsLocationHint(t *testing.T) {
	e := NewContextEnhancer()

	enhanced := e.Enhance("put it on the desktop", models.Entities{}, nil)
	if got := enhanced[KeyLocationHint]; got != "Desktop" {
		t.Errorf("location_hint = %v, want Desktop", got)
	}
}

func TestEnhanceNeverOverwrites(t *testing.T) {
	e := NewContextEnhancer()

	entities := models.Entities{KeyPriority: "low"}
	enhanced := e.Enhance("do this asap", entities, nil)

	if got := enhanced[KeyPriority]; got != "low" {
		t.Errorf("priority = %v, existing value must be kept", got)
	}
}

func TestEnhanceUrgencyAndImportance(t *testing.T) {
	e := NewContextEnhancer()

	enhanced := e.Enhance("backup this urgent report", models.Entities{}, nil)
	if got := enhanced[KeyPriority]; got != "high" {
		t.Errorf("priority = %v, want high", got)
	}
	if got := enhanced[KeyImportance]; got != "high" {
		t.Errorf("importance = %v, want high", got)
	}
}

func TestEnhanceExpandsFirstAbbreviation(t *testing.T) {
	e := NewContextEnhancer()

	enhanced := e.Enhance("grab the doc", models.Entities{}, nil)
	if got := enhanced[KeyExpandedTerm]; got != "document" {
		t.Errorf("expanded_term = %v, want document", got)
	}
}

func TestEnhanceInfersFilenameFromRecentTurn(t *testing.T) {
	e := NewContextEnhancer()

	history := []models.Message{
		{Role: models.RoleUser, Content: "I was editing the Report file earlier"},
		{Role: models.RoleAssistant, Content: "Noted."},
		{Role: models.RoleUser, Content: "check the Budget document too"},
	}

	enhanced := e.Enhance("open it again", models.Entities{}, history)

	// the most recent file-related user turn wins
	if got := enhanced[KeyInferredFilename]; got != "Budget" {
		t.Errorf("inferred_filename = %v, want Budget", got)
	}
}

func TestEnhanceSkipsInferenceWhenPathPresent(t *testing.T) {
	e := NewContextEnhancer()

	history := []models.Message{
		{Role: models.RoleUser, Content: "the Report file"},
	}
	entities := models.Entities{KeyFilePath: "notes.txt"}

	enhanced := e.Enhance("open it", entities, history)
	if _, ok := enhanced[KeyInferredFilename]; ok {
		t.Error("inferred_filename set even though file_path was present")
	}
}

func TestLearnFromInteractionRunningMean(t *testing.T) {
	e := NewContextEnhancer()

	msg := "create a file named notes.txt"
	e.LearnFromInteraction(msg, models.IntentFileOperation, true)
	e.LearnFromInteraction(msg, models.IntentFileOperation, true)
	e.LearnFromInteraction(msg, models.IntentFileOperation, false)

	stats, ok := e.Stats(msg, models.IntentFileOperation)
	if !ok {
		t.Fatal("no stats recorded")
	}
	if stats.Count != 3 {
		t.Errorf("count = %d, want 3", stats.Count)
	}
	if math.Abs(stats.SuccessRate-2.0/3.0) > 1e-9 {
		t.Errorf("success rate = %v, want %v", stats.SuccessRate, 2.0/3.0)
	}
}

func TestStatsKeyedByIntent(t *testing.T) {
	e := NewContextEnhancer()

	e.LearnFromInteraction("find it", models.IntentSearch, true)

	if _, ok := e.Stats("find it", models.IntentFileOperation); ok {
		t.Error("stats leaked across intents")
	}
}
