// Package client implements the outbound HTTP client for the
// generative-language provider.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aivahq/aiva-lite-api/internal/domain"
	"github.com/aivahq/aiva-lite-api/internal/infra/observability"
	"github.com/aivahq/aiva-lite-api/internal/infra/resilience"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("client/gemini")

// maxErrorBody bounds how much of an error response is read back.
const maxErrorBody = 64 * 1024

// GeminiClient calls the Gemini generateContent REST endpoint.
//
// Failure taxonomy:
//   - domain.ErrNotConfigured — no API key; checked before any transport use
//   - domain.ErrProvider      — the provider rejected the call or returned
//     no content; never retried
//   - domain.ErrTransport     — network-level failure; retried with bounded
//     backoff
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewGeminiClient creates the provider client. The apiKey is injected here,
// never read from ambient state, so tests can substitute a fake credential
// or a fake transport on httpClient.
func NewGeminiClient(
	httpClient *http.Client,
	baseURL, apiKey string,
	cb *gobreaker.CircuitBreaker,
	cfg resilience.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *GeminiClient {
	maxConc := cfg.MaxConcurrency
	if maxConc <= 0 {
		maxConc = 1
	}
	return &GeminiClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(maxConc),
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// Configured reports whether a provider credential is present.
func (c *GeminiClient) Configured() bool {
	return c.apiKey != ""
}

// ============================================================
// Wire types — Gemini v1beta generateContent
// ============================================================

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
	Role  string         `json:"role,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      generateContent `json:"content"`
		FinishReason string          `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

type providerErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Complete sends one prompt to the provider and returns the trimmed answer
// text. The call goes through the circuit breaker and a bulkhead; only
// transport failures are retried.
func (c *GeminiClient) Complete(ctx context.Context, prompt, model string, params domain.GenerationParams) (string, error) {
	ctx, span := tracer.Start(ctx, "GeminiClient.Complete")
	defer span.End()

	if !c.Configured() {
		return "", &domain.ErrNotConfigured{Setting: "GEMINI_API_KEY"}
	}

	callID := uuid.New().String()
	span.SetAttributes(
		attribute.String("gemini.call_id", callID),
		attribute.String("gemini.model", model),
	)

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return "", err
	}
	defer c.bulkhead.Release()

	var answer string

	result, err := c.cb.Execute(func() (any, error) {
		innerErr := resilience.RetryIf(ctx, c.cfg, isTransient, func() error {
			text, callErr := c.doGenerate(ctx, prompt, model, params)
			if callErr != nil {
				return callErr
			}
			answer = text
			return nil
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return answer, nil
	})

	if err != nil {
		c.metrics.IncrExternalError("gemini")
		c.logger.Error("completion call failed",
			zap.String("call_id", callID),
			zap.String("model", model),
			zap.Error(err),
		)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &domain.ErrCircuitOpen{Service: "gemini"}
		}
		return "", err
	}

	return result.(string), nil
}

// doGenerate performs a single generateContent round trip.
func (c *GeminiClient) doGenerate(ctx context.Context, prompt, model string, params domain.GenerationParams) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: prompt}}, Role: "user"},
		},
		GenerationConfig: generationConfig{
			Temperature:     params.Temperature,
			TopP:            params.TopP,
			TopK:            params.TopK,
			MaxOutputTokens: params.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &domain.ErrTransport{Provider: "gemini", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var pe providerErrorBody
		msg := strings.TrimSpace(string(raw))
		if jsonErr := json.Unmarshal(raw, &pe); jsonErr == nil && pe.Error.Message != "" {
			msg = pe.Error.Message
		}
		return "", &domain.ErrProvider{
			Provider: "gemini",
			Message:  fmt.Sprintf("status %d: %s", resp.StatusCode, msg),
		}
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", &domain.ErrProvider{Provider: "gemini", Message: fmt.Sprintf("undecodable response: %v", err)}
	}

	c.metrics.RecordTokens(
		genResp.UsageMetadata.PromptTokenCount,
		genResp.UsageMetadata.CandidatesTokenCount,
	)

	if len(genResp.Candidates) == 0 {
		return "", &domain.ErrProvider{Provider: "gemini", Message: "no candidates returned"}
	}

	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", &domain.ErrProvider{Provider: "gemini", Message: "empty completion text"}
	}
	return text, nil
}

// isTransient reports whether an error is a network-level failure worth
// retrying. Provider rejections and missing credentials are terminal.
func isTransient(err error) bool {
	var transport *domain.ErrTransport
	return errors.As(err, &transport)
}
