package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"taskpilot/internal/models"
)

// patternRule binds one entity key to its extraction pattern. Rules run in
// declaration order; a rule that matches populates its key with the first
// captured value, or a list when several groups capture.
type patternRule struct {
	key string
	re  *regexp.Regexp
}

// EntityExtractor pulls structured fields out of raw text. Extract is a pure
// function of its input except for the clock used to anchor relative times.
type EntityExtractor struct {
	rules []patternRule
	now   func() time.Time
}

// NewEntityExtractor creates an extractor with the built-in rule table
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{
		rules: []patternRule{
			{KeyFilePath, regexp.MustCompile(`(?i)["']([^"']+\.[a-zA-Z0-9]+)["']|(?:file|path):\s*(\S+)`)},
			{KeyDirectoryPath, regexp.MustCompile(`(?i)["']([^"']+/)["']|(?:directory|folder):\s*(\S+)`)},
			{KeyTime, regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2}(?:\s*[AP]M)?)\b`)},
			{KeyDate, regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}|\d{1,2}-\d{1,2}-\d{4})\b`)},
			{KeyRelativeTime, regexp.MustCompile(`(?i)\b(tomorrow|today|tonight|later|next week|next month)\b`)},
			{KeyScriptName, regexp.MustCompile(`(?i)["']([^"']+\.py)["']|\b(\w+\.py)\b`)},
			{KeyCommand, regexp.MustCompile(`(?i)(?:run|execute)\s+["']([^"']+)["']`)},
			{KeyNumber, regexp.MustCompile(`\b(\d+)\b`)},
			{KeyMonthDate, regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2}),?\s+(\d{4})\b`)},
		},
		now: time.Now,
	}
}

// Extract applies the rule table and the fixed post-processing passes.
// A pattern that does not match simply leaves its key absent; Extract never
// fails.
func (e *EntityExtractor) Extract(text string) models.Entities {
	entities := models.Entities{}

	for _, rule := range e.rules {
		matches := rule.re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		var values []string
		for _, m := range matches {
			for _, group := range m[1:] {
				if group != "" {
					values = append(values, group)
				}
			}
		}
		switch len(values) {
		case 0:
		case 1:
			entities[rule.key] = values[0]
		default:
			entities[rule.key] = values
		}
	}

	extractedTime := extractTimeOfDay(text)
	if extractedTime != "" {
		entities[KeyExtractedTime] = extractedTime
	}

	extractedDate := extractLongDate(text)
	if extractedDate != "" {
		entities[KeyExtractedDate] = extractedDate
	}

	e.resolveScheduledDatetime(entities, extractedTime, extractedDate)
	resolveOperation(text, entities)

	return entities
}

// resolveScheduledDatetime derives scheduled_datetime through a fixed
// priority chain, first match wins. A relative time phrase takes precedence
// over an explicit clock time even when both are present; that ordering is
// load-bearing for downstream consumers, so keep it.
func (e *EntityExtractor) resolveScheduledDatetime(entities models.Entities, extractedTime, extractedDate string) {
	_, hasDate := entities[KeyDate]
	_, hasTime := entities[KeyTime]

	switch {
	case entities[KeyRelativeTime] != nil:
		entities[KeyScheduledDatetime] = parseRelativeTime(FirstString(entities[KeyRelativeTime]), e.now())
	case hasDate && hasTime:
		entities[KeyScheduledDatetime] = FirstString(entities[KeyDate]) + " " + FirstString(entities[KeyTime])
	case hasDate && extractedTime != "":
		entities[KeyScheduledDatetime] = FirstString(entities[KeyDate]) + " " + extractedTime
	case extractedDate != "" && extractedTime != "":
		entities[KeyScheduledDatetime] = extractedDate + " " + extractedTime
	case entities[KeyMonthDate] != nil:
		formatted := formatMonthDate(StringList(entities[KeyMonthDate]))
		if formatted == "" {
			return
		}
		if extractedTime != "" {
			entities[KeyScheduledDatetime] = formatted + " " + extractedTime
		} else {
			entities[KeyScheduledDatetime] = formatted
		}
	}
}

// parseRelativeTime maps a relative phrase to an absolute timestamp.
// Day-granularity offsets land at 09:00, "tonight" at 20:00, "later" two
// hours out.
func parseRelativeTime(phrase string, now time.Time) string {
	var target time.Time

	switch strings.ToLower(phrase) {
	case "tomorrow":
		target = atHour(now.AddDate(0, 0, 1), 9)
	case "today":
		target = atHour(now, now.Hour())
	case "tonight":
		target = atHour(now, 20)
	case "later":
		target = now.Add(2 * time.Hour)
	case "next week":
		target = atHour(now.AddDate(0, 0, 7), 9)
	case "next month":
		target = atHour(now.AddDate(0, 0, 30), 9)
	default:
		target = now
	}

	return target.Format(DatetimeLayout)
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

var timeOfDayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)`),
	regexp.MustCompile(`(\d{1,2})\s*(am|pm)`),
	regexp.MustCompile(`at\s+(\d{1,2}):(\d{2})`),
	regexp.MustCompile(`at\s+(\d{1,2})`),
}

// extractTimeOfDay resolves local time phrases to 24-hour HH:MM:SS.
// A bare "at H" matches but captures a single group and produces nothing;
// that mirrors the documented pattern table.
func extractTimeOfDay(message string) string {
	lower := strings.ToLower(message)

	for _, re := range timeOfDayPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		groups := m[1:]
		if len(groups) < 2 {
			continue
		}

		hour, _ := strconv.Atoi(groups[0])
		var minute int
		var ampm string

		if groups[1] == "am" || groups[1] == "pm" {
			ampm = groups[1]
		} else {
			minute, _ = strconv.Atoi(groups[1])
			if len(groups) > 2 && (groups[2] == "am" || groups[2] == "pm") {
				ampm = groups[2]
			}
		}

		if ampm == "pm" && hour != 12 {
			hour += 12
		} else if ampm == "am" && hour == 12 {
			hour = 0
		}

		return fmt.Sprintf("%02d:%02d:00", hour, minute)
	}

	return ""
}

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

var longDatePattern = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2}),?\s+(\d{4})\b`)

// extractLongDate resolves a "<month-name> <day>, <year>" phrase to MM/DD/YYYY
func extractLongDate(message string) string {
	m := longDatePattern.FindStringSubmatch(strings.ToLower(message))
	if m == nil {
		return ""
	}

	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return formatCalendarDate(monthNumbers[m[1]], day, year)
}

// formatMonthDate normalizes the month_date capture triple to MM/DD/YYYY
func formatMonthDate(parts []string) string {
	if len(parts) < 3 {
		return ""
	}

	month, ok := monthNumbers[strings.ToLower(parts[0])]
	if !ok {
		month = 1
	}
	day, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])
	return formatCalendarDate(month, day, year)
}

// formatCalendarDate rejects impossible dates (February 30 and friends) by
// checking that time.Date did not normalize the day away.
func formatCalendarDate(month, day, year int) string {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", month, day, year)
}

// operationVerbs maps canonical file operations to their trigger verbs.
// Order matters: the first matching verb wins.
var operationVerbs = []struct {
	op    string
	verbs []string
}{
	{"create", []string{"create", "make", "new", "add", "build", "generate"}},
	{"open", []string{"open", "show", "display", "view"}},
	{"read", []string{"read", "see", "check", "look at"}},
	{"delete", []string{"delete", "remove", "erase", "trash", "clear"}},
	{"move", []string{"move", "transfer", "relocate", "shift"}},
	{"copy", []string{"copy", "duplicate", "clone"}},
	{"write", []string{"write", "save", "store", "put"}},
	{"rename", []string{"rename", "change name"}},
}

var creationWords = []string{"make", "new", "create", "build"}

// resolveOperation sets the operation entity from the action-verb table.
// A folder or directory keyword alongside a creation verb forces create when
// no verb already matched.
func resolveOperation(text string, entities models.Entities) {
	lower := strings.ToLower(text)

	for _, entry := range operationVerbs {
		for _, verb := range entry.verbs {
			if strings.Contains(lower, verb) {
				entities[KeyOperation] = entry.op
				return
			}
		}
	}

	if strings.Contains(lower, "folder") || strings.Contains(lower, "directory") {
		if _, ok := entities[KeyOperation]; !ok {
			for _, word := range creationWords {
				if strings.Contains(lower, word) {
					entities[KeyOperation] = "create"
					return
				}
			}
		}
	}
}

// FirstString unwraps an entity value to its first scalar
func FirstString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

// StringList unwraps an entity value to a list
func StringList(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return t
	case string:
		return []string{t}
	}
	return nil
}
