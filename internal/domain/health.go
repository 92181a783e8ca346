package domain

// ============================================================
// Service metadata, health & metrics API responses
// ============================================================

// ServiceInfo is returned by GET /.
type ServiceInfo struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// HealthStatus is returned by GET /health. GeminiAPI reports whether a
// completion-provider credential is configured ("configured" /
// "not configured").
type HealthStatus struct {
	Status    string `json:"status"`
	GeminiAPI string `json:"gemini_api"`
}

// AssistantMetrics is the JSON snapshot returned by GET /metrics/assistant.
type AssistantMetrics struct {
	TotalRequests       int64   `json:"totalRequests"`
	ErrorRate           float64 `json:"errorRate"`
	AvgTokensPerRequest float64 `json:"avgTokensPerRequest"`
	EstimatedCostUsd    float64 `json:"estimatedCostUsd"`
	Period              string  `json:"period"`
}
