package api

import (
	"fmt"
	"strings"

	"github.com/stratfolio/stratfolio/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateGenerateStrategyRequest validates the strategy generation body
func ValidateGenerateStrategyRequest(req *models.GenerateStrategyRequest) error {
	if strings.TrimSpace(req.GoalText) == "" {
		return ValidationError{Field: "goal_text", Message: "Goal text is required"}
	}

	if req.RiskTolerance < 1 || req.RiskTolerance > 3 {
		return ValidationError{Field: "risk_tolerance", Message: "Risk tolerance must be between 1 and 3"}
	}

	if req.InvestmentHorizon < 1 {
		return ValidationError{Field: "investment_horizon", Message: "Investment horizon must be at least 1 year"}
	}

	if req.PortfolioSize <= 0 {
		return ValidationError{Field: "portfolio_size", Message: "Portfolio size must be greater than zero"}
	}

	return nil
}

// ValidateFeedbackRequest validates the feedback processing body
func ValidateFeedbackRequest(req *models.FeedbackRequest) error {
	if strings.TrimSpace(req.RecommendationID) == "" {
		return ValidationError{Field: "recommendation_id", Message: "Recommendation ID is required"}
	}

	if strings.TrimSpace(req.FeedbackText) == "" {
		return ValidationError{Field: "feedback_text", Message: "Feedback text is required"}
	}

	return nil
}
