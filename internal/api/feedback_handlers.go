package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stratfolio/stratfolio/internal/advisor"
	"github.com/stratfolio/stratfolio/internal/database"
	"github.com/stratfolio/stratfolio/internal/models"
	"log/slog"
)

// FeedbackHandler handles feedback processing requests
type FeedbackHandler struct {
	engine advisor.Engine
	repo   RecommendationRepository
	logger *slog.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(engine advisor.Engine, repo RecommendationRepository, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		engine: engine,
		repo:   repo,
		logger: logger,
	}
}

// ProcessFeedback handles POST /api/process-feedback
func (h *FeedbackHandler) ProcessFeedback(w http.ResponseWriter, r *http.Request) {
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

	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateFeedbackRequest(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	rec, err := h.repo.Get(r.Context(), req.RecommendationID)
	if err != nil {
		if errors.Is(err, database.ErrRecommendationNotFound) {
			http.Error(w, "Recommendation not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load recommendation", "error", err, "recommendation_id", req.RecommendationID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	analysis, err := h.engine.AnalyzeFeedback(r.Context(), rec, req.FeedbackText)
	if err != nil {
		var malformed *advisor.MalformedResponseError
		if errors.As(err, &malformed) {
			h.logger.Error("feedback analysis failed", "error", err)
			http.Error(w, "Model returned an unusable response", http.StatusBadGateway)
			return
		}
		h.logger.Error("feedback analysis failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.repo.AttachFeedback(r.Context(), rec.ID, analysis); err != nil {
		h.logger.Error("failed to attach feedback", "error", err, "recommendation_id", rec.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := models.FeedbackResponse{
		FeedbackAnalysis:    analysis.Analysis,
		RiskAdjustment:      string(analysis.RiskAdjustment),
		PreferenceChanges:   analysis.PreferenceChanges,
		StrategyAdjustments: analysis.StrategyAdjustments,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
