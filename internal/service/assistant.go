package service

import (
	"context"
	"time"

	"github.com/aivahq/aiva-lite-api/internal/domain"
	"github.com/aivahq/aiva-lite-api/internal/infra/observability"
	"github.com/aivahq/aiva-lite-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service/assistant")

// Assistant orchestrates the chat pipeline: data snapshot → recomputed
// analytics → prompt assembly → completion call. It also serves the
// read-only data endpoints.
type Assistant struct {
	store        port.DataLoader
	completer    port.Completer
	prompts      PromptBuilder
	defaultModel string
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewAssistant creates the assistant service with all dependencies injected.
func NewAssistant(
	store port.DataLoader,
	completer port.Completer,
	prompts PromptBuilder,
	defaultModel string,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Assistant {
	return &Assistant{
		store:        store,
		completer:    completer,
		prompts:      prompts,
		defaultModel: defaultModel,
		metrics:      metrics,
		logger:       logger,
	}
}

// ProviderConfigured reports whether the completion provider credential is
// present (used by GET /health).
func (a *Assistant) ProviderConfigured() bool {
	return a.completer.Configured()
}

// Customers returns the customer records from the current data file.
func (a *Assistant) Customers(ctx context.Context) ([]domain.Customer, error) {
	ctx, span := tracer.Start(ctx, "Assistant.Customers")
	defer span.End()

	snap, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Customers, nil
}

// Feedback returns the feedback records from the current data file.
func (a *Assistant) Feedback(ctx context.Context) ([]domain.FeedbackEntry, error) {
	ctx, span := tracer.Start(ctx, "Assistant.Feedback")
	defer span.End()

	snap, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Feedback, nil
}

// Analytics recomputes the summary metrics from the raw records. The file's
// own analytics object is never trusted; when it disagrees with the
// recomputed values a drift warning is logged.
func (a *Assistant) Analytics(ctx context.Context) (domain.AnalyticsSnapshot, error) {
	ctx, span := tracer.Start(ctx, "Assistant.Analytics")
	defer span.End()

	snap, err := a.store.Load(ctx)
	if err != nil {
		return domain.AnalyticsSnapshot{}, err
	}
	return a.aggregate(snap), nil
}

func (a *Assistant) aggregate(snap *domain.Snapshot) domain.AnalyticsSnapshot {
	analytics := Aggregate(snap.Customers, snap.Feedback)
	if snap.StoredAnalytics != nil && !analyticsEqual(analytics, *snap.StoredAnalytics) {
		a.logger.Warn("stored analytics drifted from recomputed values",
			zap.Int("stored_total_customers", snap.StoredAnalytics.TotalCustomers),
			zap.Int("computed_total_customers", analytics.TotalCustomers),
			zap.Float64("stored_average_rating", snap.StoredAnalytics.AverageRating),
			zap.Float64("computed_average_rating", analytics.AverageRating),
		)
	}
	return analytics
}

// Chat answers one free-text question with the full company data embedded
// as prompt context. Every failure in the pipeline propagates to the
// caller — there is no local recovery.
func (a *Assistant) Chat(ctx context.Context, question, model string) (*domain.ChatResponse, error) {
	ctx, span := tracer.Start(ctx, "Assistant.Chat")
	defer span.End()

	if question == "" {
		return nil, &domain.ErrValidation{Field: "question", Message: "question is required"}
	}
	if model == "" {
		model = a.defaultModel
	}
	span.SetAttributes(attribute.String("chat.model", model))

	start := time.Now()
	defer func() {
		a.metrics.RecordRequestDuration("chat", time.Since(start))
	}()

	// Credential check comes first so a missing key never triggers a data
	// load or an outbound call.
	if !a.completer.Configured() {
		a.metrics.IncrChat("error")
		return nil, &domain.ErrNotConfigured{Setting: "GEMINI_API_KEY"}
	}

	snap, err := a.store.Load(ctx)
	if err != nil {
		a.metrics.IncrChat("error")
		return nil, err
	}

	prompt := a.prompts.Build(question, snap, a.aggregate(snap))
	a.metrics.ObservePromptSize(len(prompt))

	answer, err := a.completer.Complete(ctx, prompt, model, domain.DefaultGenerationParams())
	if err != nil {
		a.metrics.IncrChat("error")
		a.logger.Error("chat completion failed",
			zap.String("model", model),
			zap.Error(err),
		)
		return nil, err
	}

	a.metrics.IncrChat("success")
	return &domain.ChatResponse{Answer: answer, ContextUsed: true}, nil
}
