package services

import (
	"time"

	"taskpilot/internal/dispatch"
	"taskpilot/internal/logging"
	"taskpilot/internal/models"
	"taskpilot/internal/nlp"
)

// ChatService orchestrates the interpretation pipeline: history, intent
// classification, entity extraction, context enhancement, dispatch and
// enrichment fan-out.
type ChatService struct {
	classifier    *nlp.Classifier
	extractor     *nlp.EntityExtractor
	enhancer      *nlp.ContextEnhancer
	conversations *ConversationManager
	dispatcher    *dispatch.Dispatcher
	sink          *EnrichmentSink
	metrics       *Metrics
	memoryWindow  int
}

func NewChatService(
	classifier *nlp.Classifier,
	extractor *nlp.EntityExtractor,
	enhancer *nlp.ContextEnhancer,
	conversations *ConversationManager,
	dispatcher *dispatch.Dispatcher,
	sink *EnrichmentSink,
	metrics *Metrics,
	memoryWindow int,
) *ChatService {
	return &ChatService{
		classifier:    classifier,
		extractor:     extractor,
		enhancer:      enhancer,
		conversations: conversations,
		dispatcher:    dispatcher,
		sink:          sink,
		metrics:       metrics,
		memoryWindow:  memoryWindow,
	}
}

// ProcessMessage runs one chat turn end to end and returns the reply
func (s *ChatService) ProcessMessage(message, sessionID string, context map[string]interface{}) models.ChatResponse {
	start := time.Now()
	s.metrics.ChatRequests.Inc()

	log := logging.WithSession(sessionID)
	log.Info("processing message")

	s.conversations.AddMessage(sessionID, models.Message{
		Role:    models.RoleUser,
		Content: message,
	})

	history := s.conversations.GetRecentMessages(sessionID, s.memoryWindow)

	intent := s.classify(message, history)
	log.Debug("intent classified", "intent", intent.Type, "confidence", intent.Confidence)
	s.metrics.IntentsClassified.WithLabelValues(string(intent.Type)).Inc()

	response := s.dispatcher.Dispatch(intent, message, context, history)

	s.conversations.AddMessage(sessionID, models.Message{
		Role:    models.RoleAssistant,
		Content: response,
	})

	s.sink.Add(Interaction{
		SessionID:         sessionID,
		UserMessage:       message,
		AssistantResponse: response,
		Intent:            intent.Type,
	})

	s.metrics.ActiveSessions.Set(float64(s.conversations.SessionCount()))
	s.metrics.ChatRequestLatency.Observe(time.Since(start).Seconds())

	return models.ChatResponse{
		Response:  response,
		Intent:    intent,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	}
}

// classify runs prediction and extraction in parallel, then enhances the
// entities with conversational context when history exists
func (s *ChatService) classify(message string, history []models.Message) models.Intent {
	var (
		result   nlp.IntentResult
		entities models.Entities
	)

	done := make(chan struct{})
	go func() {
		result = s.classifier.Predict(message)
		close(done)
	}()
	entities = s.extractor.Extract(message)
	<-done

	if len(history) > 0 {
		entities = s.enhancer.Enhance(message, entities, history)
	}

	return models.Intent{
		Type:       result.Intent,
		Confidence: result.Confidence,
		Entities:   entities,
	}
}

// RecordFeedback feeds an explicit success signal back into the enhancer
func (s *ChatService) RecordFeedback(feedback models.LearningFeedback) {
	s.enhancer.LearnFromInteraction(feedback.Message, feedback.ExpectedIntent, feedback.Success)
}
