package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
)

// Metrics holds the bot's collectors. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	storeOps         *prometheus.CounterVec
	events           *prometheus.CounterVec
	quizzesCompleted prometheus.Counter
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		providerRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordbot_provider_requests_total",
				Help: "Provider calls by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
		providerLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordbot_provider_latency_ms",
				Help:    "Provider call latency distribution in milliseconds.",
				Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
			},
			[]string{"provider"},
		),
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordbot_store_operations_total",
				Help: "Vocabulary store calls by operation and outcome.",
			},
			[]string{"op", "outcome"},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordbot_events_total",
				Help: "Inbound chat events by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		quizzesCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordbot_quizzes_completed_total",
				Help: "Quizzes answered to the last question.",
			},
		),
	}

	reg.MustRegister(m.providerRequests, m.providerLatency, m.storeOps, m.events, m.quizzesCompleted)
	return m
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (m *Metrics) ObserveProvider(provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(norm(provider), outcome).Inc()
	m.providerLatency.WithLabelValues(norm(provider)).Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) IncStore(op, outcome string) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) IncEvent(kind, outcome string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncQuizCompleted() {
	if m == nil {
		return
	}
	m.quizzesCompleted.Inc()
}
