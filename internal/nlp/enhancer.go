package nlp

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	gocache "github.com/patrickmn/go-cache"

	"taskpilot/internal/models"
)

// ContextEnhancer augments extracted entities with conversational context and
// lexical common sense. Enhancement is strictly additive: a key already
// present is never overwritten.
type ContextEnhancer struct {
	patterns *gocache.Cache
}

// PatternStats is the running success estimate for one (intent, prefix) pair.
// Observational only; nothing feeds it back into scoring.
type PatternStats struct {
	Count       int
	SuccessRate float64
}

// NewContextEnhancer creates an enhancer with an empty pattern memory
func NewContextEnhancer() *ContextEnhancer {
	return &ContextEnhancer{
		patterns: gocache.New(gocache.NoExpiration, 0),
	}
}

var (
	fileContextWords = []string{"file", "folder", "document"}
	urgencyWords     = []string{"urgent", "asap", "now", "quickly"}
	importanceWords  = []string{"backup", "save", "important"}
)

// locationHints maps location keywords to canonical paths, first match wins
var locationHints = []struct {
	keyword string
	path    string
}{
	{"desktop", "Desktop"},
	{"downloads", "Downloads"},
	{"documents", "Documents"},
	{"pictures", "Pictures"},
	{"home", "~"},
}

// abbreviations expand shorthand terms, first match wins
var abbreviations = []struct {
	abbr string
	full string
}{
	{"doc", "document"},
	{"docs", "documents"},
	{"pic", "picture"},
	{"pics", "pictures"},
	{"vid", "video"},
	{"vids", "videos"},
	{"temp", "temporary"},
	{"proj", "project"},
	{"config", "configuration"},
	{"pref", "preference"},
}

// Enhance returns a copy of entities with missing keys filled in from recent
// history and lexical heuristics
func (e *ContextEnhancer) Enhance(message string, entities models.Entities, history []models.Message) models.Entities {
	enhanced := make(models.Entities, len(entities)+4)
	for k, v := range entities {
		enhanced[k] = v
	}

	e.inferFromContext(enhanced, history)
	applyCommonSense(message, enhanced)
	expandAbbreviations(message, enhanced)

	return enhanced
}

// inferFromContext scans the last three user turns, most recent first, for a
// file-related mention and lifts the first capitalized token as a filename
// candidate
func (e *ContextEnhancer) inferFromContext(entities models.Entities, history []models.Message) {
	if entities[KeyFilePath] != nil || len(history) == 0 {
		return
	}

	recent := history
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	for i := len(recent) - 1; i >= 0; i-- {
		msg := recent[i]
		if msg.Role != models.RoleUser || !containsAny(strings.ToLower(msg.Content), fileContextWords) {
			continue
		}
		for _, word := range strings.Fields(msg.Content) {
			if len(word) > 2 && startsUpper(word) {
				setIfAbsent(entities, KeyInferredFilename, word)
				return
			}
		}
	}
}

func applyCommonSense(message string, entities models.Entities) {
	lower := strings.ToLower(message)

	for _, hint := range locationHints {
		if strings.Contains(lower, hint.keyword) {
			setIfAbsent(entities, KeyLocationHint, hint.path)
			break
		}
	}

	if containsAny(lower, urgencyWords) {
		setIfAbsent(entities, KeyPriority, "high")
	}

	if containsAny(lower, importanceWords) {
		setIfAbsent(entities, KeyImportance, "high")
	}
}

func expandAbbreviations(message string, entities models.Entities) {
	lower := strings.ToLower(message)

	for _, entry := range abbreviations {
		if strings.Contains(lower, entry.abbr) {
			setIfAbsent(entities, KeyExpandedTerm, entry.full)
			break
		}
	}
}

// LearnFromInteraction updates the running success-rate estimate for the
// (intent, message-prefix) pair via the incremental mean formula
func (e *ContextEnhancer) LearnFromInteraction(message string, intent models.IntentType, success bool) {
	prefix := message
	if len(prefix) > 30 {
		prefix = prefix[:30]
	}
	key := fmt.Sprintf("%s:%s", intent, prefix)

	stats := PatternStats{}
	if cached, ok := e.patterns.Get(key); ok {
		stats = cached.(PatternStats)
	}

	outcome := 0.0
	if success {
		outcome = 1.0
	}
	stats.Count++
	stats.SuccessRate += (outcome - stats.SuccessRate) / float64(stats.Count)

	e.patterns.Set(key, stats, gocache.NoExpiration)

	slog.Info("learned interaction pattern",
		"pattern", key,
		"success_rate", fmt.Sprintf("%.2f", stats.SuccessRate))
}

// Stats returns the tracked estimate for an (intent, prefix) pair
func (e *ContextEnhancer) Stats(message string, intent models.IntentType) (PatternStats, bool) {
	prefix := message
	if len(prefix) > 30 {
		prefix = prefix[:30]
	}
	cached, ok := e.patterns.Get(fmt.Sprintf("%s:%s", intent, prefix))
	if !ok {
		return PatternStats{}, false
	}
	return cached.(PatternStats), true
}

func setIfAbsent(entities models.Entities, key string, value interface{}) {
	if _, ok := entities[key]; !ok {
		entities[key] = value
	}
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}
