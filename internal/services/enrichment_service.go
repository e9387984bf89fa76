package services

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/redis/go-redis/v9"

	"taskpilot/internal/models"
)

// interactionStream is the Redis stream enriched interactions are appended to
const interactionStream = "interactions"

// Interaction is one completed chat exchange queued for enrichment
type Interaction struct {
	SessionID         string
	UserMessage       string
	AssistantResponse string
	Intent            models.IntentType
}

// EnrichmentSink persists chat interactions to a Redis stream off the request
// path. Add never blocks: when the buffer is full the interaction is dropped
// and counted. A nil Redis service turns the sink into a logging no-op.
type EnrichmentSink struct {
	redis  *RedisService
	queue  chan Interaction
	onDrop func()

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewEnrichmentSink starts the sink's single consumer goroutine. onDrop is
// invoked for every interaction discarded because the buffer was full; it may
// be nil.
func NewEnrichmentSink(redis *RedisService, bufferSize int, onDrop func()) *EnrichmentSink {
	if bufferSize < 1 {
		bufferSize = 1
	}
	s := &EnrichmentSink{
		redis:  redis,
		queue:  make(chan Interaction, bufferSize),
		onDrop: onDrop,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.consume()
	return s
}

// Add queues an interaction for persistence, dropping it if the buffer is full
func (s *EnrichmentSink) Add(interaction Interaction) {
	select {
	case s.queue <- interaction:
	default:
		slog.Warn("enrichment buffer full, dropping interaction",
			"session_id", interaction.SessionID)
		if s.onDrop != nil {
			s.onDrop()
		}
	}
}

func (s *EnrichmentSink) consume() {
	defer close(s.done)

	for {
		select {
		case interaction := <-s.queue:
			s.persist(interaction)
		case <-s.stop:
			// drain what is already queued before exiting
			for {
				select {
				case interaction := <-s.queue:
					s.persist(interaction)
				default:
					return
				}
			}
		}
	}
}

func (s *EnrichmentSink) persist(interaction Interaction) {
	if s.redis == nil {
		slog.Debug("enrichment sink has no redis, interaction discarded",
			"session_id", interaction.SessionID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := s.redis.Client().XAdd(ctx, &redis.XAddArgs{
		Stream: interactionStream,
		Values: map[string]interface{}{
			"session_id":         interaction.SessionID,
			"user_message":       interaction.UserMessage,
			"assistant_response": interaction.AssistantResponse,
			"intent":             string(interaction.Intent),
		},
	}).Err()
	if err != nil {
		slog.Error("failed to persist interaction", "session_id", interaction.SessionID, "error", err)
		return
	}

	slog.Debug("interaction persisted", "session_id", interaction.SessionID)
}

// Stop flushes queued interactions and stops the consumer
func (s *EnrichmentSink) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}
