package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port     string
	RedisURL string

	// Conversation memory
	MaxConversationHistory   int // per-session ring capacity
	ConversationMemoryWindow int // turns handed to the pipeline per request

	// Task execution
	TaskTimeout        time.Duration // wall-clock limit for script execution
	MaxConcurrentTasks int
	EnrichmentBuffer   int // queued interaction writes before drops

	// Search
	SearchMaxResults int
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "3001"),
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		MaxConversationHistory:   getIntEnv("MAX_CONVERSATION_HISTORY", 50),
		ConversationMemoryWindow: getIntEnv("CONVERSATION_MEMORY_WINDOW", 10),

		TaskTimeout:        time.Duration(getIntEnv("TASK_TIMEOUT_SECONDS", 300)) * time.Second,
		MaxConcurrentTasks: getIntEnv("MAX_CONCURRENT_TASKS", 5),
		EnrichmentBuffer:   getIntEnv("ENRICHMENT_BUFFER", 256),

		SearchMaxResults: getIntEnv("SEARCH_MAX_RESULTS", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
