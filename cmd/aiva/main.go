package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aivahq/aiva-lite-api/internal/config"
	"github.com/aivahq/aiva-lite-api/internal/handler"
	"github.com/aivahq/aiva-lite-api/internal/infra/client"
	"github.com/aivahq/aiva-lite-api/internal/infra/datastore"
	"github.com/aivahq/aiva-lite-api/internal/infra/observability"
	"github.com/aivahq/aiva-lite-api/internal/infra/resilience"
	"github.com/aivahq/aiva-lite-api/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("data_path", cfg.DataPath),
		zap.String("gemini_model", cfg.GeminiModel),
		zap.Bool("gemini_configured", cfg.GeminiAPIKey != ""),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "aiva-lite-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Data store ---
	store := datastore.NewFileStore(cfg.DataPath, metrics, logger)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("gemini")

	// --- Provider client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	gemini := client.NewGeminiClient(
		httpClient,
		cfg.GeminiBaseURL,
		cfg.GeminiAPIKey,
		cb,
		resilienceCfg,
		metrics,
		logger,
	)

	// --- Services ---
	assistantSvc := service.NewAssistant(
		store,
		gemini,
		service.PromptBuilder{MaxRecords: cfg.PromptMaxRecords},
		cfg.GeminiModel,
		metrics,
		logger,
	)
	authGate := service.NewAuthGate(logger)

	// --- Router ---
	router := handler.NewRouter(assistantSvc, authGate, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
