package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"log/slog"

	"taskpilot/internal/models"
	"taskpilot/internal/nlp"
	"taskpilot/internal/tools"
)

// Dispatcher routes a classified intent to the matching handler and renders
// the user-facing reply. Handlers execute through the tool registry so the
// chat path and the task API share the same implementations.
type Dispatcher struct {
	registry  *tools.Registry
	responses *ResponseGenerator
}

func NewDispatcher(registry *tools.Registry) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		responses: NewResponseGenerator(),
	}
}

// Dispatch handles one classified message. A panicking handler is contained
// here so a single bad request cannot take down the pipeline.
func (d *Dispatcher) Dispatch(intent models.Intent, message string, context map[string]interface{}, history []models.Message) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("handler panicked", "intent", intent.Type, "panic", r)
			reply = "Sorry, something went wrong while handling that request."
		}
	}()

	slog.Info("handling intent", "intent", intent.Type, "confidence", intent.Confidence)

	activeMode := "chat"
	if m, ok := context["active_mode"].(string); ok && m != "" {
		activeMode = m
	}

	if allowed, refusal := ModeAllowed(activeMode, intent.Type); !allowed {
		return refusal
	}

	switch intent.Type {
	case models.IntentFileOperation:
		return d.handleFileOperation(intent.Entities, message)
	case models.IntentScheduleReminder:
		return d.handleReminder(intent.Entities, message)
	case models.IntentRunScript:
		return d.handleScript(intent.Entities)
	case models.IntentSearch:
		return d.handleSearch(message)
	case models.IntentSystemInfo:
		return d.handleSystemInfo()
	default:
		return d.responses.ChatReply(message)
	}
}

var quotedName = regexp.MustCompile(`["']([^"']+)["']`)

// fileNameStopWords filters command filler when guessing a file name from the
// raw message
var fileNameStopWords = map[string]struct{}{
	"create": {}, "make": {}, "new": {}, "a": {}, "an": {}, "the": {},
	"in": {}, "on": {}, "at": {}, "folder": {}, "file": {}, "directory": {},
	"named": {}, "called": {}, "please": {}, "can": {}, "you": {}, "me": {},
	"i": {}, "want": {}, "need": {}, "would": {}, "like": {}, "desktop": {},
	"to": {}, "for": {}, "with": {}, "my": {}, "some": {}, "this": {}, "that": {},
}

func (d *Dispatcher) handleFileOperation(entities models.Entities, message string) string {
	lower := strings.ToLower(message)

	operation := nlp.FirstString(entities[nlp.KeyOperation])
	if operation == "" {
		operation = "create"
	}
	if strings.Contains(lower, "folder") || strings.Contains(lower, "directory") {
		operation = "create_folder"
	}

	filePath := nlp.FirstString(entities[nlp.KeyFilePath])
	if filePath == "" {
		filePath = nlp.FirstString(entities[nlp.KeyDirectoryPath])
	}
	if filePath == "" {
		filePath = extractFileNameFromMessage(message)
	}
	if filePath == "" {
		return "I can help you with files. Please specify the file or folder name."
	}

	fullPath := filePath
	if strings.Contains(lower, "desktop") {
		if home, err := os.UserHomeDir(); err == nil {
			fullPath = filepath.Join(home, "Desktop", filePath)
		}
	}

	reply, err := d.runFileOperation(operation, filePath, fullPath)
	if err != nil {
		slog.Error("file operation failed", "operation", operation, "error", err)
		return fmt.Sprintf("Sorry, I couldn't %s the file: %v", operation, err)
	}
	return reply
}

func (d *Dispatcher) runFileOperation(operation, filePath, fullPath string) (string, error) {
	switch operation {
	case "create_folder":
		_, err := d.registry.Execute("file_operation", map[string]interface{}{
			"operation": "create_folder",
			"file_path": fullPath,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created folder '%s' successfully!", filePath), nil

	case "create":
		_, err := d.registry.Execute("file_operation", map[string]interface{}{
			"operation": "create",
			"file_path": fullPath,
			"content":   "",
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created file '%s' successfully!", filePath), nil

	case "read", "open":
		result, err := d.registry.Execute("file_operation", map[string]interface{}{
			"operation": "read",
			"file_path": fullPath,
		})
		if err != nil {
			return "", err
		}
		content, _ := result["content"].(string)
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		return "File content:\n" + content, nil

	case "delete":
		_, err := d.registry.Execute("file_operation", map[string]interface{}{
			"operation": "delete",
			"file_path": fullPath,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted '%s' successfully!", filePath), nil

	default:
		return fmt.Sprintf("I'll help you %s the file '%s'.", operation, filePath), nil
	}
}

// extractFileNameFromMessage guesses a target name from the raw message when
// extraction produced no path entity
func extractFileNameFromMessage(message string) string {
	if m := quotedName.FindStringSubmatch(message); m != nil {
		return m[1]
	}

	words := strings.Fields(message)

	triggers := map[string]struct{}{"named": {}, "called": {}, "name": {}, "titled": {}, "as": {}}
	for i, word := range words {
		if _, ok := triggers[strings.ToLower(word)]; ok && i+1 < len(words) {
			return strings.Trim(words[i+1], `"'`)
		}
	}

	var candidate string
	for _, word := range words {
		clean := strings.Trim(word, `.,!?"'`)
		if len(clean) <= 1 {
			continue
		}
		if _, skip := fileNameStopWords[strings.ToLower(clean)]; skip {
			continue
		}
		candidate = clean
	}
	return candidate
}

func (d *Dispatcher) handleReminder(entities models.Entities, message string) string {
	reminderType := "reminder"
	if containsAnyOf(strings.ToLower(message), "meeting", "event", "appointment", "schedule") {
		reminderType = "calendar"
	}

	args := map[string]interface{}{
		"message": message,
		"type":    reminderType,
	}
	if scheduled := nlp.FirstString(entities[nlp.KeyScheduledDatetime]); scheduled != "" {
		args["scheduled_time"] = scheduled
	}

	result, err := d.registry.Execute("schedule_reminder", args)
	if err != nil {
		return fmt.Sprintf("Couldn't set reminder: %v", err)
	}
	if ok, _ := result["success"].(bool); !ok {
		return "Error: Failed to create reminder"
	}
	return "Reminder created!"
}

func (d *Dispatcher) handleScript(entities models.Entities) string {
	scriptName := nlp.FirstString(entities[nlp.KeyScriptName])
	if scriptName == "" {
		return "Which script would you like me to run?"
	}

	result, err := d.registry.Execute("run_script", map[string]interface{}{
		"script_path": scriptName,
		"args":        []interface{}{},
	})
	if err != nil {
		return fmt.Sprintf("Couldn't execute script: %v", err)
	}

	if ok, _ := result["success"].(bool); !ok {
		errMsg, _ := result["error"].(string)
		if errMsg == "" {
			errMsg = "Unknown error"
		}
		return fmt.Sprintf("Script failed: %s", errMsg)
	}

	output, _ := result["stdout"].(string)
	if len(output) > 300 {
		output = output[:300]
	}
	return fmt.Sprintf("Script executed successfully!\n\nOutput:\n%s", output)
}

// searchTermStopWords filters query scaffolding when guessing a search term
var searchTermStopWords = map[string]struct{}{
	"find": {}, "search": {}, "folder": {}, "file": {}, "where": {},
	"locate": {}, "help": {}, "please": {}, "exact": {}, "location": {},
	"this": {}, "that": {}, "tell": {},
}

func (d *Dispatcher) handleSearch(message string) string {
	term := extractSearchTerm(message)
	if term == "" {
		return "Please specify what you want to search for."
	}

	result, err := d.registry.Execute("search", map[string]interface{}{"term": term})
	if err != nil {
		slog.Error("search failed", "term", term, "error", err)
		return fmt.Sprintf("No results found for '%s'", term)
	}

	paths, _ := result["results"].([]string)
	if len(paths) == 0 {
		return fmt.Sprintf("No results found for '%s'", term)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s) for '%s':\n\n", len(paths), term)
	shown := paths
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, path := range shown {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, path)
	}
	if len(paths) > 5 {
		fmt.Fprintf(&sb, "\n... and %d more results", len(paths)-5)
	}
	return sb.String()
}

// extractSearchTerm prefers an explicit named/called target, then a quoted
// phrase, then the longest remaining content word
func extractSearchTerm(message string) string {
	words := strings.Fields(strings.ToLower(message))

	for i, word := range words {
		if (word == "named" || word == "called") && i+1 < len(words) {
			return strings.Trim(words[i+1], `"'`)
		}
	}

	if m := quotedName.FindStringSubmatch(message); m != nil {
		return m[1]
	}

	var best string
	for _, word := range words {
		clean := strings.Trim(word, `.,!?"'`)
		if len(clean) <= 3 {
			continue
		}
		if _, skip := searchTermStopWords[clean]; skip {
			continue
		}
		if len(clean) > len(best) {
			best = clean
		}
	}
	return best
}

func (d *Dispatcher) handleSystemInfo() string {
	result, err := d.registry.Execute("system_info", map[string]interface{}{})
	if err != nil {
		slog.Error("system info failed", "error", err)
		return "Unable to retrieve system information at the moment."
	}
	report, _ := result["report"].(string)
	if report == "" {
		return "Unable to retrieve system information at the moment."
	}
	return report
}
