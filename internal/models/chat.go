package models

import "time"

// MessageRole identifies who produced a conversation turn
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// IntentType is the classified category of a user request
type IntentType string

const (
	IntentChat             IntentType = "chat"
	IntentFileOperation    IntentType = "file_operation"
	IntentScheduleReminder IntentType = "schedule_reminder"
	IntentRunScript        IntentType = "run_script"
	IntentSearch           IntentType = "search"
	IntentSystemInfo       IntentType = "system_info"
	IntentUnknown          IntentType = "unknown"
)

// IntentTypes lists every intent in declaration order. Classifier tie-breaking
// and exhaustiveness checks depend on this ordering, so keep it stable.
var IntentTypes = []IntentType{
	IntentChat,
	IntentFileOperation,
	IntentScheduleReminder,
	IntentRunScript,
	IntentSearch,
	IntentSystemInfo,
	IntentUnknown,
}

// Entities maps a fixed vocabulary of entity keys to scalar or list values
type Entities map[string]interface{}

// Intent is the result of classifying one utterance
type Intent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
	Entities   Entities   `json:"entities"`
}

// Message represents a single conversation turn
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatRequest is the request body for the chat endpoint
type ChatRequest struct {
	Message   string                 `json:"message"`
	SessionID string                 `json:"session_id,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// ChatResponse is the composed reply for one processed message
type ChatResponse struct {
	Response  string    `json:"response"`
	Intent    Intent    `json:"intent"`
	SessionID string    `json:"session_id"`
	TaskID    string    `json:"task_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a session's message window plus bookkeeping metadata
type Conversation struct {
	SessionID    string    `json:"session_id"`
	Messages     []Message `json:"messages"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LearningFeedback is the request body for the learn endpoint
type LearningFeedback struct {
	SessionID      string     `json:"session_id"`
	Message        string     `json:"message"`
	ExpectedIntent IntentType `json:"expected_intent"`
	Success        bool       `json:"success"`
}
