package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	ChatRequests       prometheus.Counter
	ChatRequestLatency prometheus.Histogram
	IntentsClassified  *prometheus.CounterVec
	TasksCompleted     *prometheus.CounterVec
	EnrichmentDrops    prometheus.Counter
	ActiveSessions     prometheus.Gauge
}

// InitMetrics initializes the Prometheus metrics
func InitMetrics() *Metrics {
	return &Metrics{
		ChatRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskpilot_chat_requests_total",
			Help: "Total number of chat requests processed",
		}),

		ChatRequestLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "taskpilot_chat_request_duration_seconds",
			Help:    "Chat request latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		}),

		IntentsClassified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taskpilot_intents_classified_total",
			Help: "Total number of classified intents by type",
		}, []string{"intent"}),

		TasksCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taskpilot_tasks_completed_total",
			Help: "Total number of finished tasks by terminal status",
		}, []string{"status"}),

		EnrichmentDrops: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taskpilot_enrichment_drops_total",
			Help: "Interactions dropped because the enrichment buffer was full",
		}),

		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "taskpilot_active_sessions",
			Help: "Number of conversation sessions held in memory",
		}),
	}
}
