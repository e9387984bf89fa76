package dispatch

import (
	"math/rand"
	"strings"
)

// ResponseGenerator produces canned conversational replies
type ResponseGenerator struct {
	greetings []string
	thanks    []string
	goodbyes  []string
	jokes     []string
}

func NewResponseGenerator() *ResponseGenerator {
	return &ResponseGenerator{
		greetings: []string{
			"Hello! How can I assist you today?",
			"Hi there! What can I help you with?",
			"Greetings! I'm here to help.",
			"Hey! What would you like me to do?",
		},
		thanks: []string{
			"You're welcome!",
			"Happy to help!",
			"My pleasure!",
			"Anytime!",
		},
		goodbyes: []string{
			"Goodbye! Have a great day!",
			"See you later!",
			"Take care!",
			"Until next time!",
		},
		jokes: []string{
			"Why do programmers prefer dark mode? Because light attracts bugs!",
			"Why did the developer go broke? Because he used up all his cache!",
			"How many programmers does it take to change a light bulb? None, that's a hardware problem!",
		},
	}
}

// ChatReply matches the message against the canned categories in order:
// greeting, thanks, goodbye, help, joke, then the capability fallback.
func (g *ResponseGenerator) ChatReply(message string) string {
	lower := strings.ToLower(message)

	if containsAnyOf(lower, "hello", "hi", "hey", "greetings") {
		return pick(g.greetings)
	}

	if containsAnyOf(lower, "thank", "thanks") {
		return pick(g.thanks)
	}

	if containsAnyOf(lower, "bye", "goodbye", "see you") {
		return pick(g.goodbyes)
	}

	if strings.Contains(lower, "what can you do") || strings.Contains(lower, "help") {
		return g.helpReply()
	}

	if strings.Contains(lower, "joke") {
		return pick(g.jokes)
	}

	return "I'm here to help! I can manage files, schedule reminders, run scripts, search for information, and chat with you."
}

func (g *ResponseGenerator) helpReply() string {
	return "I can help you with:\n" +
		"• File operations (create, open, delete, move, copy)\n" +
		"• Schedule reminders and notifications\n" +
		"• Run scripts and programs\n" +
		"• Search for files and information\n" +
		"• System information\n" +
		"• General conversation\n\n" +
		"Just tell me what you need!"
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}

func containsAnyOf(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
