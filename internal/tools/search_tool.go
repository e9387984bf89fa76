package tools

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"log/slog"
)

// NewSearchTool creates the local filesystem search tool. It scans the
// desktop first, then the home directory, and stops at maxResults matches.
func NewSearchTool(maxResults int) *Tool {
	return &Tool{
		Name:        "search",
		Description: "Search the desktop and home directory for files and folders by name",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"term": map[string]interface{}{
					"type":        "string",
					"description": "Name fragment to search for, case insensitive",
				},
			},
			"required": []string{"term"},
		},
		Keywords: []string{"search", "find", "locate", "where"},
		Execute: func(args map[string]interface{}) (map[string]interface{}, error) {
			return executeSearch(maxResults, args)
		},
	}
}

func executeSearch(maxResults int, args map[string]interface{}) (map[string]interface{}, error) {
	term := stringArg(args, "term")
	if term == "" {
		return nil, fmt.Errorf("term is required")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	locations := []string{filepath.Join(home, "Desktop"), home}
	results := searchLocations(locations, term, maxResults)

	slog.Info("filesystem search finished", "term", term, "results", len(results))
	return map[string]interface{}{
		"operation": "search",
		"term":      term,
		"results":   results,
		"count":     len(results),
	}, nil
}

func searchLocations(locations []string, term string, maxResults int) []string {
	needle := strings.ToLower(term)
	var results []string

	for _, location := range locations {
		if len(results) >= maxResults {
			break
		}

		filepath.WalkDir(location, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// unreadable entries are skipped, not fatal
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if len(results) >= maxResults {
				return fs.SkipAll
			}
			if path != location && strings.Contains(strings.ToLower(d.Name()), needle) {
				results = append(results, path)
			}
			return nil
		})
	}

	return results
}
