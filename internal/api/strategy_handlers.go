package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stratfolio/stratfolio/internal/advisor"
	"github.com/stratfolio/stratfolio/internal/models"
	"log/slog"
)

// RecommendationRepository is the persistence surface the handlers need.
type RecommendationRepository interface {
	Store(ctx context.Context, rec *models.Recommendation) error
	Get(ctx context.Context, id string) (*models.Recommendation, error)
	AttachFeedback(ctx context.Context, id string, analysis models.FeedbackAnalysis) error
}

// StrategyHandler handles strategy generation requests
type StrategyHandler struct {
	engine advisor.Engine
	repo   RecommendationRepository
	logger *slog.Logger
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(engine advisor.Engine, repo RecommendationRepository, logger *slog.Logger) *StrategyHandler {
	return &StrategyHandler{
		engine: engine,
		repo:   repo,
		logger: logger,
	}
}

// GenerateStrategy handles POST /api/generate-strategy
func (h *StrategyHandler) GenerateStrategy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.GenerateStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateGenerateStrategyRequest(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	rec, err := h.engine.GenerateStrategy(r.Context(), req)
	if err != nil {
		h.writeEngineError(w, "strategy generation failed", err)
		return
	}

	if err := h.repo.Store(r.Context(), rec); err != nil {
		h.logger.Error("failed to store recommendation", "error", err, "recommendation_id", rec.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := models.StrategyResponse{
		RecommendationID: rec.ID,
		StructuredGoal:   rec.Goal,
		Strategy:         rec.Strategy,
		AgentInsights:    rec.AgentInsights,
		Presentation:     rec.Presentation,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeEngineError maps engine failures onto status codes: malformed model
// output is a bad gateway, everything else is an internal error.
func (h *StrategyHandler) writeEngineError(w http.ResponseWriter, msg string, err error) {
	var malformed *advisor.MalformedResponseError
	if errors.As(err, &malformed) {
		h.logger.Error(msg, "error", err)
		http.Error(w, "Model returned an unusable response", http.StatusBadGateway)
		return
	}

	h.logger.Error(msg, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func writeValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	var validation ValidationError
	if errors.As(err, &validation) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": validation.Message,
			"field": validation.Field,
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
