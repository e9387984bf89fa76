package services

import (
	"sort"
	"sync"
	"time"

	"log/slog"

	"taskpilot/internal/models"
)

type sessionMeta struct {
	createdAt    time.Time
	updatedAt    time.Time
	messageCount int
}

// ConversationManager keeps per-session message history in memory. Each
// session holds at most maxHistory messages; older messages are evicted.
type ConversationManager struct {
	mu         sync.RWMutex
	maxHistory int
	messages   map[string][]models.Message
	metadata   map[string]*sessionMeta
}

func NewConversationManager(maxHistory int) *ConversationManager {
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &ConversationManager{
		maxHistory: maxHistory,
		messages:   make(map[string][]models.Message),
		metadata:   make(map[string]*sessionMeta),
	}
}

// AddMessage appends a message to the session, evicting the oldest entry
// when the session is at capacity. MessageCount tracks total messages added,
// not retained.
func (m *ConversationManager) AddMessage(sessionID string, message models.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}

	history := append(m.messages[sessionID], message)
	if len(history) > m.maxHistory {
		history = history[len(history)-m.maxHistory:]
	}
	m.messages[sessionID] = history

	meta, ok := m.metadata[sessionID]
	if !ok {
		meta = &sessionMeta{createdAt: time.Now().UTC()}
		m.metadata[sessionID] = meta
	}
	meta.updatedAt = time.Now().UTC()
	meta.messageCount++

	slog.Debug("added message to session", "session_id", sessionID)
}

// GetRecentMessages returns up to limit of the newest messages, oldest first
func (m *ConversationManager) GetRecentMessages(sessionID string, limit int) []models.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history, ok := m.messages[sessionID]
	if !ok {
		return nil
	}

	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	out := make([]models.Message, len(history))
	copy(out, history)
	return out
}

// GetConversation returns the full retained history for a session
func (m *ConversationManager) GetConversation(sessionID string) (models.Conversation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conversationLocked(sessionID)
}

func (m *ConversationManager) conversationLocked(sessionID string) (models.Conversation, bool) {
	history, ok := m.messages[sessionID]
	if !ok {
		return models.Conversation{}, false
	}

	messages := make([]models.Message, len(history))
	copy(messages, history)

	conv := models.Conversation{
		SessionID:    sessionID,
		Messages:     messages,
		MessageCount: len(messages),
	}
	if meta, ok := m.metadata[sessionID]; ok {
		conv.CreatedAt = meta.createdAt
		conv.UpdatedAt = meta.updatedAt
		conv.MessageCount = meta.messageCount
	}
	return conv, true
}

// GetRecentConversations lists sessions ordered by most recent activity
func (m *ConversationManager) GetRecentConversations(limit int) []models.Conversation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.metadata))
	for id := range m.metadata {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return m.metadata[ids[i]].updatedAt.After(m.metadata[ids[j]].updatedAt)
	})

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	conversations := make([]models.Conversation, 0, len(ids))
	for _, id := range ids {
		if conv, ok := m.conversationLocked(id); ok {
			conversations = append(conversations, conv)
		}
	}
	return conversations
}

// SessionCount returns the number of sessions with metadata
func (m *ConversationManager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.metadata)
}

// Clear empties a session's history, keeping its metadata
func (m *ConversationManager) Clear(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.messages[sessionID]; !ok {
		return false
	}
	m.messages[sessionID] = nil
	slog.Info("cleared conversation", "session_id", sessionID)
	return true
}
