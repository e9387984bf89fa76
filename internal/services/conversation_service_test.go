package services

import (
	"fmt"
	"testing"

	"taskpilot/internal/models"
)

func userMessage(content string) models.Message {
	return models.Message{Role: models.RoleUser, Content: content}
}

func TestConversationEvictsOldestAtCapacity(t *testing.T) {
	m := NewConversationManager(3)

	for i := 1; i <= 5; i++ {
		m.AddMessage("s1", userMessage(fmt.Sprintf("m%d", i)))
	}

	conv, ok := m.GetConversation("s1")
	if !ok {
		t.Fatal("conversation missing")
	}
	if len(conv.Messages) != 3 {
		t.Fatalf("retained %d messages, want 3", len(conv.Messages))
	}
	if conv.Messages[0].Content != "m3" {
		t.Errorf("oldest retained = %q, want m3", conv.Messages[0].Content)
	}
	if conv.MessageCount != 5 {
		t.Errorf("MessageCount = %d, want total added 5", conv.MessageCount)
	}
}

func TestGetRecentMessagesReturnsNewestOldestFirst(t *testing.T) {
	m := NewConversationManager(10)

	for i := 1; i <= 4; i++ {
		m.AddMessage("s1", userMessage(fmt.Sprintf("m%d", i)))
	}

	recent := m.GetRecentMessages("s1", 2)
	if len(recent) != 2 {
		t.Fatalf("got %d messages, want 2", len(recent))
	}
	if recent[0].Content != "m3" || recent[1].Content != "m4" {
		t.Errorf("recent = [%q, %q], want [m3, m4]", recent[0].Content, recent[1].Content)
	}
}

func TestGetRecentMessagesUnknownSession(t *testing.T) {
	m := NewConversationManager(10)
	if got := m.GetRecentMessages("nope", 5); len(got) != 0 {
		t.Errorf("got %d messages for unknown session", len(got))
	}
}

func TestGetRecentConversationsOrdering(t *testing.T) {
	m := NewConversationManager(10)

	m.AddMessage("a", userMessage("first"))
	m.AddMessage("b", userMessage("second"))
	m.AddMessage("a", userMessage("third"))

	recent := m.GetRecentConversations(10)
	if len(recent) != 2 {
		t.Fatalf("got %d conversations, want 2", len(recent))
	}
	if recent[0].SessionID != "a" {
		t.Errorf("most recent = %q, want a", recent[0].SessionID)
	}
}

func TestClearConversation(t *testing.T) {
	m := NewConversationManager(10)
	m.AddMessage("s1", userMessage("hello"))

	if !m.Clear("s1") {
		t.Fatal("Clear returned false for existing session")
	}
	if got := m.GetRecentMessages("s1", 5); len(got) != 0 {
		t.Errorf("messages remain after Clear: %d", len(got))
	}
	if m.Clear("missing") {
		t.Error("Clear returned true for unknown session")
	}
}

func TestSessionCount(t *testing.T) {
	m := NewConversationManager(10)
	m.AddMessage("a", userMessage("x"))
	m.AddMessage("b", userMessage("y"))
	m.AddMessage("a", userMessage("z"))

	if got := m.SessionCount(); got != 2 {
		t.Errorf("SessionCount = %d, want 2", got)
	}
}
