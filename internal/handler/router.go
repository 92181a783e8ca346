package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aivahq/aiva-lite-api/internal/domain"
	"github.com/aivahq/aiva-lite-api/internal/infra/observability"
	"github.com/aivahq/aiva-lite-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

const apiVersion = "1.0.0"

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract the AIVA dashboard frontend expects.
func NewRouter(svc *service.Assistant, gate *service.AuthGate, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(corsMiddleware)

	// --- Operational endpoints ---
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/metrics/assistant", assistantMetricsHandler(metrics, logger))

	// =============================================
	// 1. ℹ️ Service info & health
	// =============================================
	r.Get("/", rootHandler())
	r.Get("/health", healthHandler(svc))

	// =============================================
	// 2. 🔐 Login
	// =============================================
	r.Post("/login", loginHandler(gate, logger))

	// =============================================
	// 3. 📊 Data endpoints
	// =============================================
	r.Get("/customers", customersHandler(svc, logger))
	r.Get("/feedback", feedbackHandler(svc, logger))
	r.Get("/analytics", analyticsHandler(svc, logger))
	r.Get("/customers/export", customersExportHandler(svc, logger))
	r.Get("/feedback/export", feedbackExportHandler(svc, logger))

	// =============================================
	// 4. 🤖 Chat
	// =============================================
	r.Post("/chat", chatHandler(svc, logger))

	return r
}

// ============================================================
// Service info & health
// ============================================================

func rootHandler() http.HandlerFunc {
	info := domain.ServiceInfo{
		Message: "Welcome to AIVA Lite API",
		Version: apiVersion,
		Endpoints: []string{
			"/chat",
			"/analytics",
			"/customers",
			"/feedback",
			"/login",
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, info)
	}
}

func healthHandler(svc *service.Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := domain.HealthStatus{Status: "healthy", GeminiAPI: "not configured"}
		if svc.ProviderConfigured() {
			status.GeminiAPI = "configured"
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// ============================================================
// Login — POST /login
// ============================================================

func loginHandler(gate *service.AuthGate, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /login")
		defer span.End()

		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		ok, user := gate.Authenticate(req.Email, req.Password)
		if !ok {
			// Unsuccessful login is a normal response, not an HTTP error.
			writeJSON(w, http.StatusOK, domain.LoginResponse{
				Success: false,
				Message: "Invalid credentials",
			})
			return
		}

		span.SetAttributes(attribute.String("user.role", user.Role))
		writeJSON(w, http.StatusOK, domain.LoginResponse{
			Success: true,
			Message: "Login successful",
			User:    user,
		})
	}
}

// ============================================================
// Data endpoints
// ============================================================

func customersHandler(svc *service.Assistant, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /customers")
		defer span.End()

		customers, err := svc.Customers(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, customers)
	}
}

func feedbackHandler(svc *service.Assistant, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /feedback")
		defer span.End()

		feedback, err := svc.Feedback(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, feedback)
	}
}

func analyticsHandler(svc *service.Assistant, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /analytics")
		defer span.End()

		analytics, err := svc.Analytics(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, analytics)
	}
}

// ============================================================
// CSV exports
// ============================================================

func customersExportHandler(svc *service.Assistant, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /customers/export")
		defer span.End()

		customers, err := svc.Customers(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		setCSVHeaders(w, "customers")
		cw := csv.NewWriter(w)
		cw.Write([]string{"id", "name", "email", "status", "plan", "last_activity"})
		for _, c := range customers {
			cw.Write([]string{
				strconv.Itoa(c.ID), c.Name, c.Email, c.Status, c.Plan, c.LastActivity,
			})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			logger.Error("csv export failed", zap.Error(err))
		}
	}
}

func feedbackExportHandler(svc *service.Assistant, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /feedback/export")
		defer span.End()

		feedback, err := svc.Feedback(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		setCSVHeaders(w, "feedback")
		cw := csv.NewWriter(w)
		cw.Write([]string{"id", "user", "rating", "comment", "category", "status", "date"})
		for _, f := range feedback {
			cw.Write([]string{
				strconv.Itoa(f.ID), f.User, strconv.Itoa(f.Rating),
				f.Comment, f.Category, f.Status, f.Date,
			})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			logger.Error("csv export failed", zap.Error(err))
		}
	}
}

func setCSVHeaders(w http.ResponseWriter, name string) {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
}

// ============================================================
// Chat — POST /chat
// ============================================================

func chatHandler(svc *service.Assistant, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /chat")
		defer span.End()

		var req domain.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := svc.Chat(ctx, req.Question, req.Model)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		span.SetAttributes(attribute.Int("answer.bytes", len(resp.Answer)))
		writeJSON(w, http.StatusOK, resp)
	}
}

// ============================================================
// Assistant metrics — GET /metrics/assistant
// ============================================================

func assistantMetricsHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /metrics/assistant")
		defer span.End()

		writeJSON(w, http.StatusOK, metrics.GetAssistantSnapshot())
	}
}
