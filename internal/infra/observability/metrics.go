package observability

import (
	"time"

	"github.com/aivahq/aiva-lite-api/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	dataLoads       *prometheus.CounterVec
	tokensUsed      *prometheus.CounterVec
	chatsTotal      *prometheus.CounterVec
	promptBytes     prometheus.Histogram
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aiva_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aiva_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		dataLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aiva_data_loads_total",
				Help: "Total data file loads.",
			},
			[]string{"result"},
		),
		tokensUsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aiva_llm_tokens_total",
				Help: "Total LLM tokens consumed.",
			},
			[]string{"type"},
		),
		chatsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aiva_chats_total",
				Help: "Total chat completions processed.",
			},
			[]string{"status"},
		),
		promptBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "aiva_prompt_bytes",
				Help:    "Size of assembled prompts in bytes.",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrDataLoad counts a data file load attempt by result (ok / error).
func (m *Metrics) IncrDataLoad(result string) {
	m.dataLoads.WithLabelValues(result).Inc()
}

// RecordTokens records prompt and completion token usage.
func (m *Metrics) RecordTokens(prompt, completion int) {
	m.tokensUsed.WithLabelValues("prompt").Add(float64(prompt))
	m.tokensUsed.WithLabelValues("completion").Add(float64(completion))
}

// IncrChat increments the chat counter with a status label (success / error).
func (m *Metrics) IncrChat(status string) {
	m.chatsTotal.WithLabelValues(status).Inc()
}

// ObservePromptSize records the byte size of an assembled prompt.
func (m *Metrics) ObservePromptSize(n int) {
	m.promptBytes.Observe(float64(n))
}

// GetAssistantSnapshot returns a snapshot of chat-related metrics suitable
// for the GET /metrics/assistant endpoint.
func (m *Metrics) GetAssistantSnapshot() *domain.AssistantMetrics {
	// Gather current values from Prometheus counters.
	// Note: Prometheus counters expose cumulative values.
	promptTokens := getCounterValue(m.tokensUsed, "prompt")
	completionTokens := getCounterValue(m.tokensUsed, "completion")
	totalChats := getCounterValue(m.chatsTotal, "success") +
		getCounterValue(m.chatsTotal, "error")
	errorCount := getCounterValue(m.chatsTotal, "error")

	totalTokens := promptTokens + completionTokens
	avgTokens := float64(0)
	errorRate := float64(0)

	if totalChats > 0 {
		avgTokens = totalTokens / totalChats
		errorRate = errorCount / totalChats
	}

	// Estimated cost: Gemini Flash pricing, ~$0.10/1M prompt tokens,
	// ~$0.40/1M completion tokens.
	estimatedCost := (promptTokens/1_000_000)*0.10 + (completionTokens/1_000_000)*0.40

	return &domain.AssistantMetrics{
		TotalRequests:       int64(totalChats),
		ErrorRate:           errorRate,
		AvgTokensPerRequest: avgTokens,
		EstimatedCostUsd:    estimatedCost,
		Period:              "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
