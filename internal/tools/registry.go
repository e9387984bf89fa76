package tools

import (
	"fmt"
	"sync"
)

// Tool represents a callable task handler with its metadata and execution function
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Keywords    []string
	Execute     ExecuteFunc
}

// ExecuteFunc is the function signature for tool execution. The result map is
// merged into the owning task's Result field.
type ExecuteFunc func(args map[string]interface{}) (map[string]interface{}, error)

// Registry manages all available tools
type Registry struct {
	tools map[string]*Tool
	mutex sync.RWMutex
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*Tool),
	}
}

// Register adds a new tool to the registry
func (r *Registry) Register(tool *Tool) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	if tool.Execute == nil {
		return fmt.Errorf("tool %s must have an Execute function", tool.Name)
	}

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %s is already registered", tool.Name)
	}

	r.tools[tool.Name] = tool
	return nil
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	tool, exists := r.tools[name]
	return tool, exists
}

// Execute runs a tool by name with given arguments
func (r *Registry) Execute(name string, args map[string]interface{}) (map[string]interface{}, error) {
	tool, exists := r.Get(name)
	if !exists {
		return nil, fmt.Errorf("tool %s not found", name)
	}
	return tool.Execute(args)
}

// Count returns the number of registered tools
func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.tools)
}

// ToolInfo is a JSON-serializable representation of a Tool (without the Execute function)
type ToolInfo struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
	Keywords    []string               `json:"keywords"`
}

// ListDetailed returns all registered tools with full metadata
func (r *Registry) ListDetailed() []ToolInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]ToolInfo, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, ToolInfo{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Parameters,
			Keywords:    tool.Keywords,
		})
	}
	return result
}
