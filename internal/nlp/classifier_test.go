package nlp

import (
	"errors"
	"testing"

	"taskpilot/internal/models"
)

func TestPredictGreeting(t *testing.T) {
	h := NewHeuristicClassifier()

	result, err := h.Predict("hello there")
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if result.Intent != models.IntentChat {
		t.Errorf("intent = %q, want %q", result.Intent, models.IntentChat)
	}
}

func TestPredictZeroScoreDefaultsToChat(t *testing.T) {
	h := NewHeuristicClassifier()

	result, _ := h.Predict("xyzzy")
	if result.Intent != models.IntentChat {
		t.Errorf("intent = %q, want %q", result.Intent, models.IntentChat)
	}
	if result.Confidence != 0.6 {
		t.Errorf("confidence = %v, want 0.6", result.Confidence)
	}
}

func TestPredictConfidenceCapped(t *testing.T) {
	h := NewHeuristicClassifier()

	result, _ := h.Predict("create a new file and delete the old file in that folder")
	if result.Intent != models.IntentFileOperation {
		t.Errorf("intent = %q, want %q", result.Intent, models.IntentFileOperation)
	}
	if result.Confidence != 0.95 {
		t.Errorf("confidence = %v, want cap 0.95", result.Confidence)
	}
}

func TestPredictConfidenceRange(t *testing.T) {
	h := NewHeuristicClassifier()

	messages := []string{
		"hello",
		"create a file named test.txt",
		"remind me tomorrow at 5pm",
		"run backup.py",
		"find my tax documents",
		"what time is it",
		"",
	}

	for _, msg := range messages {
		result, _ := h.Predict(msg)
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("Predict(%q) confidence %v out of [0,1]", msg, result.Confidence)
		}
	}
}

func TestPredictIntents(t *testing.T) {
	h := NewHeuristicClassifier()

	tests := []struct {
		message string
		want    models.IntentType
	}{
		{"create a file named notes.txt", models.IntentFileOperation},
		{"remind me to call mom tomorrow", models.IntentScheduleReminder},
		{"run the backup.py script", models.IntentRunScript},
		{"find my tax documents", models.IntentSearch},
		{"what time is it", models.IntentSystemInfo},
	}

	for _, tt := range tests {
		result, _ := h.Predict(tt.message)
		if result.Intent != tt.want {
			t.Errorf("Predict(%q) = %q, want %q", tt.message, result.Intent, tt.want)
		}
	}
}

func TestPredictTieBreaksByDeclarationOrder(t *testing.T) {
	h := NewHeuristicClassifier()

	// "do" scores run_script 0.4 and "seek" scores search 0.4; run_script is
	// declared first so it must win the tie
	result, _ := h.Predict("do seek")
	if result.Intent != models.IntentRunScript {
		t.Errorf("intent = %q, want %q", result.Intent, models.IntentRunScript)
	}
}

type failingPredictor struct{}

func (failingPredictor) Predict(string) (IntentResult, error) {
	return IntentResult{}, errors.New("model unavailable")
}

func TestClassifierFallsBackOnPrimaryFailure(t *testing.T) {
	c := NewClassifier(failingPredictor{})

	result := c.Predict("hello there")
	if result.Intent != models.IntentChat {
		t.Errorf("intent = %q, want %q from heuristic fallback", result.Intent, models.IntentChat)
	}
}

func TestClassifierNilPrimaryUsesHeuristic(t *testing.T) {
	c := NewClassifier(nil)

	result := c.Predict("create a file called notes.txt")
	if result.Intent != models.IntentFileOperation {
		t.Errorf("intent = %q, want %q", result.Intent, models.IntentFileOperation)
	}
}

type fixedPredictor struct {
	result IntentResult
}

func (p fixedPredictor) Predict(string) (IntentResult, error) {
	return p.result, nil
}

func TestClassifierPrefersPrimary(t *testing.T) {
	c := NewClassifier(fixedPredictor{result: IntentResult{
		Intent:     models.IntentSearch,
		Confidence: 0.9,
	}})

	result := c.Predict("hello there")
	if result.Intent != models.IntentSearch {
		t.Errorf("intent = %q, want primary's %q", result.Intent, models.IntentSearch)
	}
}
