package nlp

import (
	"log/slog"
	"regexp"
	"strings"

	"taskpilot/internal/models"
)

// IntentResult is the outcome of classifying one utterance
type IntentResult struct {
	Intent     models.IntentType
	Confidence float64
}

// Predictor assigns an intent label and confidence to an utterance. The
// heuristic scorer always implements it; a trainable scorer may be plugged in
// without touching dispatcher code.
type Predictor interface {
	Predict(text string) (IntentResult, error)
}

// Classifier wraps an optional primary predictor with the always-available
// heuristic fallback. A primary failure is swallowed and never surfaced to
// the caller.
type Classifier struct {
	primary  Predictor
	fallback *HeuristicClassifier
}

// NewClassifier creates a classifier. primary may be nil, in which case the
// heuristic scorer handles everything.
func NewClassifier(primary Predictor) *Classifier {
	return &Classifier{
		primary:  primary,
		fallback: NewHeuristicClassifier(),
	}
}

// Predict classifies text, falling back to the heuristic scorer when the
// primary predictor is absent or fails
func (c *Classifier) Predict(text string) IntentResult {
	if c.primary != nil {
		result, err := c.primary.Predict(text)
		if err == nil {
			return result
		}
		slog.Warn("primary intent predictor failed, using heuristic fallback", "error", err)
	}

	result, _ := c.fallback.Predict(text)
	return result
}

// HeuristicClassifier scores intents by accumulating fixed bonuses for
// matching patterns, verbs, and cue words. Confidence values are heuristic
// accumulations capped at 0.95, not calibrated probabilities.
type HeuristicClassifier struct {
	patterns    map[models.IntentType][]*regexp.Regexp
	actionVerbs map[models.IntentType][]string
}

// NewHeuristicClassifier creates the fallback scorer with its built-in tables
func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{
		patterns: map[models.IntentType][]*regexp.Regexp{
			models.IntentFileOperation: {
				regexp.MustCompile(`\b(open|create|delete|move|copy|read|write|save)\b.*\b(file|folder|directory)\b`),
				regexp.MustCompile(`\b(file|folder|directory)\b`),
			},
			models.IntentScheduleReminder: {
				regexp.MustCompile(`\b(remind|schedule|alarm|notify)\b`),
				regexp.MustCompile(`\b(tomorrow|today|later|at \d+)\b`),
			},
			models.IntentRunScript: {
				regexp.MustCompile(`\b(run|execute|start|launch)\b.*\b(script|program|command)\b`),
				regexp.MustCompile(`\bpython\b.*\.py\b`),
			},
			models.IntentSearch: {
				regexp.MustCompile(`\b(search|find|look for|query)\b`),
				regexp.MustCompile(`\bwhere is\b`),
			},
			models.IntentSystemInfo: {
				regexp.MustCompile(`\b(system|cpu|memory|disk|process)\b.*\b(info|status|usage)\b`),
				regexp.MustCompile(`\bwhat.*\b(time|date|weather)\b`),
			},
		},
		actionVerbs: map[models.IntentType][]string{
			models.IntentFileOperation: {
				"create", "make", "new", "add", "build", "generate",
				"open", "display", "view", "read",
				"delete", "remove", "erase", "clear", "trash",
				"move", "transfer", "relocate", "shift",
				"copy", "duplicate", "clone",
				"write", "save", "store", "put",
				"rename", "change", "modify", "update",
			},
			models.IntentScheduleReminder: {
				"remind", "reminder", "remember", "notify", "alert",
				"schedule", "plan", "set", "arrange",
				"alarm", "wake", "ping", "tell",
			},
			models.IntentRunScript: {
				"run", "execute", "start", "launch", "fire",
				"perform", "do", "activate", "trigger",
				"call", "invoke", "process",
			},
			models.IntentSearch: {
				"search", "find", "look", "locate", "discover",
				"where", "query", "seek", "hunt", "browse", "show",
			},
			models.IntentSystemInfo: {
				"time", "date", "clock", "calendar",
				"system", "computer", "machine", "status",
				"info", "information", "details", "stats",
			},
		},
	}
}

var (
	searchPhrases    = []string{"find", "look for", "search for", "where is", "locate", "show me"}
	fileRelatedWords = []string{"file", "folder", "directory", "doc", "document", "text", "data", "path"}
	searchCueWords   = []string{"find", "search", "where", "locate", "look"}
	schedulingCues   = []string{"tomorrow", "later", "at", "pm", "am", "o'clock"}
	greetingWords    = []string{"hello", "hi", "hey", "greetings", "sup", "yo"}
)

// Predict scores every intent and returns the winner. Ties break toward the
// earliest intent in models.IntentTypes. An all-zero score yields chat at 0.6.
// The error return satisfies Predictor and is always nil.
func (h *HeuristicClassifier) Predict(text string) (IntentResult, error) {
	lower := strings.ToLower(text)
	scores := make(map[models.IntentType]float64, len(models.IntentTypes))

	for intent, patterns := range h.patterns {
		for _, re := range patterns {
			if re.MatchString(lower) {
				scores[intent] += 0.3
			}
		}
	}

	for _, phrase := range searchPhrases {
		if strings.Contains(lower, phrase) {
			scores[models.IntentSearch] += 0.6
		}
	}

	padded := " " + lower + " "
	for intent, verbs := range h.actionVerbs {
		for _, verb := range verbs {
			if strings.Contains(padded, " "+verb+" ") || strings.HasPrefix(lower, verb) {
				scores[intent] += 0.4

				if intent == models.IntentFileOperation && containsAny(lower, fileRelatedWords) {
					scores[intent] += 0.3
				}
			}
		}
	}

	if strings.Contains(lower, "folder") || strings.Contains(lower, "directory") {
		if !containsAny(lower, searchCueWords) {
			scores[models.IntentFileOperation] += 0.5
		}
	}

	if containsAny(lower, schedulingCues) {
		scores[models.IntentScheduleReminder] += 0.3
	}

	if strings.Contains(lower, ".py") || strings.Contains(lower, ".sh") || strings.Contains(lower, "script") {
		scores[models.IntentRunScript] += 0.4
	}

	for _, greeting := range greetingWords {
		if strings.HasPrefix(lower, greeting) {
			scores[models.IntentChat] += 0.8
			break
		}
	}

	winner := models.IntentChat
	best := 0.0
	for _, intent := range models.IntentTypes {
		if scores[intent] > best {
			winner = intent
			best = scores[intent]
		}
	}

	if best == 0 {
		return IntentResult{Intent: models.IntentChat, Confidence: 0.6}, nil
	}

	return IntentResult{Intent: winner, Confidence: min(best, 0.95)}, nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
