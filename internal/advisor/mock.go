package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stratfolio/stratfolio/internal/models"
)

// MockEngine is a deterministic rule-based Engine used when no LLM provider
// is configured. It keeps the full request flow working in development.
type MockEngine struct {
	logger *slog.Logger
}

var _ Engine = (*MockEngine)(nil)

// NewMockEngine returns a rule-based engine with canned allocations.
func NewMockEngine(logger *slog.Logger) *MockEngine {
	return &MockEngine{logger: logger}
}

// mockAllocations are the canned strategies per risk tolerance.
var mockAllocations = map[models.RiskTolerance]models.Strategy{
	models.RiskLow: {
		Allocation: map[string]float64{"bonds": 50, "stocks": 30, "international": 20},
		Products: []models.Product{
			{Name: "BND", Percentage: 50, Description: "US bond market exposure, low risk"},
			{Name: "VTI", Percentage: 30, Description: "Broad US stock market exposure"},
			{Name: "VXUS", Percentage: 20, Description: "International stock exposure"},
		},
		Rationale: "A conservative mix that favors capital preservation over growth.",
	},
	models.RiskMedium: {
		Allocation: map[string]float64{"stocks": 50, "bonds": 30, "international": 20},
		Products: []models.Product{
			{Name: "VTI", Percentage: 50, Description: "Broad US stock market exposure"},
			{Name: "BND", Percentage: 30, Description: "US bond market exposure, low risk"},
			{Name: "VXUS", Percentage: 20, Description: "International stock exposure"},
		},
		Rationale: "A balanced mix of growth and stability.",
	},
	models.RiskHigh: {
		Allocation: map[string]float64{"stocks": 70, "international": 20, "bonds": 10},
		Products: []models.Product{
			{Name: "VTI", Percentage: 70, Description: "Broad US stock market exposure"},
			{Name: "VXUS", Percentage: 20, Description: "International stock exposure"},
			{Name: "BND", Percentage: 10, Description: "US bond market exposure, low risk"},
		},
		Rationale: "A growth-oriented mix that accepts volatility for higher expected returns.",
	},
}

// GenerateStrategy returns the canned allocation for the goal's risk level.
func (m *MockEngine) GenerateStrategy(ctx context.Context, req models.GenerateStrategyRequest) (*models.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	goal, ok := models.NewGoal(req.GoalText, req.RiskTolerance, req.InvestmentHorizon)
	if !ok {
		return nil, fmt.Errorf("invalid risk tolerance: %d", req.RiskTolerance)
	}

	strategy := mockAllocations[goal.RiskTolerance]

	rec := &models.Recommendation{
		ID:       "rec_" + uuid.NewString(),
		Goal:     goal,
		Strategy: strategy,
		AgentInsights: models.AgentInsights{
			RiskAgentScore:            7,
			GoalAgentConfidence:       0.85,
			InvestmentAgentPrediction: "7% annual return",
		},
		CreatedAt: time.Now().UTC(),
	}
	rec.Presentation = fallbackPresentation(rec)

	m.logger.Info("generated mock recommendation", "recommendation_id", rec.ID, "risk_tolerance", goal.RiskTolerance)

	return rec, nil
}

// feedbackRules maps feedback keywords to risk adjustments, checked in
// order. The specific "too conservative" phrase must be checked before the
// bare "conservative" keyword.
var feedbackRules = []struct {
	keywords   []string
	adjustment models.RiskAdjustment
	analysis   string
}{
	{[]string{"more risk", "more aggressive", "higher return", "too conservative", "too safe"}, models.RiskHigher,
		"The user wants more growth potential and is willing to accept additional risk."},
	{[]string{"too risky", "too aggressive", "safer", "less risk", "conservative"}, models.RiskLower,
		"The user is uncomfortable with the current level of risk and wants a safer strategy."},
}

// AnalyzeFeedback classifies feedback with keyword rules.
func (m *MockEngine) AnalyzeFeedback(ctx context.Context, rec *models.Recommendation, feedbackText string) (models.FeedbackAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return models.FeedbackAnalysis{}, err
	}

	lower := strings.ToLower(feedbackText)
	for _, rule := range feedbackRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return models.FeedbackAnalysis{
					Analysis:            rule.analysis,
					RiskAdjustment:      rule.adjustment,
					StrategyAdjustments: []string{"rebalance allocation toward the adjusted risk level"},
				}, nil
			}
		}
	}

	return models.FeedbackAnalysis{
		Analysis:       "The user asked for refinements without changing the overall risk level.",
		RiskAdjustment: models.RiskNoChange,
	}, nil
}
