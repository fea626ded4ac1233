package api

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/stratfolio/stratfolio/internal/advisor"
	"github.com/stratfolio/stratfolio/internal/auth"
	"github.com/stratfolio/stratfolio/internal/database"
	"log/slog"
)

// SetupRoutes configures all API routes
func SetupRoutes(mux *http.ServeMux, engine advisor.Engine, repo RecommendationRepository, db *sql.DB, authConfig auth.Config, logger *slog.Logger) {
	handler := NewHandler(db, logger)
	strategyHandler := NewStrategyHandler(engine, repo, logger)
	feedbackHandler := NewFeedbackHandler(engine, repo, logger)
	authHandler := NewAuthHandler(authConfig, logger)

	var inferenceLogHandler *InferenceLogHandler
	if db != nil {
		inferenceLogHandler = NewInferenceLogHandler(database.NewInferenceLogRepository(db), logger)
	} else {
		inferenceLogHandler = NewInferenceLogHandler(nil, logger)
	}

	authMiddleware := auth.AuthMiddleware(authConfig)

	// Core advisory endpoints (public)
	mux.HandleFunc("/api/generate-strategy", strategyHandler.GenerateStrategy)
	mux.HandleFunc("/api/process-feedback", feedbackHandler.ProcessFeedback)
	mux.HandleFunc("/api/health", handler.HealthHandler)
	mux.HandleFunc("/api/info", handler.InfoHandler)

	// Authentication routes (public)
	mux.HandleFunc("/api/auth/login", authHandler.Login)

	// Admin routes (require auth)
	mux.HandleFunc("/api/admin/inference-logs", func(w http.ResponseWriter, r *http.Request) {
		authMiddleware(http.HandlerFunc(inferenceLogHandler.ListInferenceLogs)).ServeHTTP(w, r)
	})
	mux.HandleFunc("/api/admin/inference-logs/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/stats") {
			authMiddleware(http.HandlerFunc(inferenceLogHandler.GetInferenceStats)).ServeHTTP(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})
}
