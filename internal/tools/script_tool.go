package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"log/slog"
)

// NewScriptTool creates the script runner tool. Scripts run with a hard
// timeout; a non-zero exit is reported in the result, not as an error.
func NewScriptTool(timeout time.Duration) *Tool {
	return &Tool{
		Name:        "run_script",
		Description: "Execute a local script and capture its output",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"script_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the script to execute",
				},
				"args": map[string]interface{}{
					"type":        "array",
					"description": "Arguments passed to the script",
				},
			},
			"required": []string{"script_path"},
		},
		Keywords: []string{"script", "run", "execute", "python", "bash"},
		Execute: func(args map[string]interface{}) (map[string]interface{}, error) {
			return executeScript(timeout, args)
		},
	}
}

func executeScript(timeout time.Duration, args map[string]interface{}) (map[string]interface{}, error) {
	scriptPath := stringArg(args, "script_path")
	if scriptPath == "" {
		return nil, fmt.Errorf("script_path is required")
	}

	if _, err := os.Stat(scriptPath); err != nil {
		return nil, fmt.Errorf("script not found: %s", scriptPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	name, cmdArgs := buildScriptCommand(scriptPath, listArg(args, "args"))
	cmd := exec.CommandContext(ctx, name, cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		slog.Error("script timed out", "script", scriptPath, "timeout", timeout)
		return nil, fmt.Errorf("script execution timeout after %s", timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		slog.Error("script failed", "script", scriptPath, "return_code", exitErr.ExitCode())
		return map[string]interface{}{
			"operation":   "run_script",
			"script_path": scriptPath,
			"stdout":      stdout.String(),
			"stderr":      stderr.String(),
			"return_code": exitErr.ExitCode(),
			"success":     false,
			"error":       err.Error(),
		}, nil
	}

	result := map[string]interface{}{
		"operation":   "run_script",
		"script_path": scriptPath,
		"stdout":      stdout.String(),
		"stderr":      stderr.String(),
		"return_code": cmd.ProcessState.ExitCode(),
		"success":     true,
	}

	slog.Info("script executed", "script", scriptPath)
	return result, nil
}

// buildScriptCommand chooses the interpreter from the file extension
func buildScriptCommand(scriptPath string, extra []string) (string, []string) {
	switch filepath.Ext(scriptPath) {
	case ".py":
		return "python", append([]string{scriptPath}, extra...)
	case ".sh":
		return "bash", append([]string{scriptPath}, extra...)
	default:
		return scriptPath, extra
	}
}

func listArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
