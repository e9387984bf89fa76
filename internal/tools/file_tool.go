package tools

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"log/slog"
)

// NewFileTool creates the file operation tool. It handles create, create_folder,
// read, delete, move and copy against the local filesystem.
func NewFileTool() *Tool {
	return &Tool{
		Name:        "file_operation",
		Description: "Create, read, delete, move or copy files and folders",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"operation": map[string]interface{}{
					"type":        "string",
					"description": "One of: create, create_folder, read, delete, move, copy",
				},
				"file_path": map[string]interface{}{
					"type":        "string",
					"description": "Target file or folder path",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Content for create operations",
				},
				"destination": map[string]interface{}{
					"type":        "string",
					"description": "Destination path for move and copy",
				},
			},
			"required": []string{"operation", "file_path"},
		},
		Keywords: []string{"file", "folder", "create", "delete", "move", "copy"},
		Execute:  executeFileOperation,
	}
}

func executeFileOperation(args map[string]interface{}) (map[string]interface{}, error) {
	operation := strings.ToLower(stringArg(args, "operation"))
	filePath := stringArg(args, "file_path")

	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	switch operation {
	case "create":
		return createFile(filePath, stringArg(args, "content"))
	case "create_folder":
		return createFolder(filePath)
	case "read":
		return readFile(filePath)
	case "delete":
		return deletePath(filePath)
	case "move":
		return movePath(filePath, stringArg(args, "destination"))
	case "copy":
		return copyPath(filePath, stringArg(args, "destination"))
	default:
		return nil, fmt.Errorf("unsupported file operation: %s", operation)
	}
}

func createFile(filePath, content string) (map[string]interface{}, error) {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return nil, err
	}

	slog.Info("created file", "path", filePath)
	return map[string]interface{}{
		"operation": "create",
		"file_path": filePath,
		"success":   true,
	}, nil
}

func createFolder(dirPath string) (map[string]interface{}, error) {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return nil, err
	}

	slog.Info("created folder", "path", dirPath)
	return map[string]interface{}{
		"operation": "create_folder",
		"file_path": dirPath,
		"success":   true,
	}, nil
}

func readFile(filePath string) (map[string]interface{}, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	slog.Info("read file", "path", filePath)
	return map[string]interface{}{
		"operation": "read",
		"file_path": filePath,
		"content":   string(data),
	}, nil
}

func deletePath(filePath string) (map[string]interface{}, error) {
	info, err := os.Stat(filePath)
	if err == nil {
		if info.IsDir() {
			err = os.RemoveAll(filePath)
		} else {
			err = os.Remove(filePath)
		}
		if err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	slog.Info("deleted path", "path", filePath)
	return map[string]interface{}{
		"operation": "delete",
		"file_path": filePath,
		"success":   true,
	}, nil
}

func movePath(source, destination string) (map[string]interface{}, error) {
	if destination == "" {
		return nil, fmt.Errorf("destination is required for move")
	}

	if err := os.Rename(source, destination); err != nil {
		return nil, err
	}

	slog.Info("moved path", "source", source, "destination", destination)
	return map[string]interface{}{
		"operation":   "move",
		"source":      source,
		"destination": destination,
		"success":     true,
	}, nil
}

func copyPath(source, destination string) (map[string]interface{}, error) {
	if destination == "" {
		return nil, fmt.Errorf("destination is required for copy")
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		err = copyTree(source, destination)
	} else {
		err = copyFile(source, destination, info.Mode())
	}
	if err != nil {
		return nil, err
	}

	slog.Info("copied path", "source", source, "destination", destination)
	return map[string]interface{}{
		"operation":   "copy",
		"source":      source,
		"destination": destination,
		"success":     true,
	}, nil
}

func copyFile(source, destination string, mode fs.FileMode) error {
	src, err := os.Open(source)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func copyTree(source, destination string) error {
	return filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		target := filepath.Join(destination, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
