package models

import "time"

// Product is a concrete instrument appearing in a strategy.
type Product struct {
	Name        string  `json:"name"`
	Percentage  float64 `json:"percentage"`
	Description string  `json:"description,omitempty"`
}

// Strategy is the allocation core of a recommendation. Allocation keys are
// asset class names and values are percentages that should sum to roughly 100.
type Strategy struct {
	Allocation map[string]float64 `json:"allocation"`
	Products   []Product          `json:"products,omitempty"`
	Rationale  string             `json:"rationale,omitempty"`
}

// AgentInsights carries the per-agent confidence signals surfaced alongside
// a strategy.
type AgentInsights struct {
	RiskAgentScore            int     `json:"risk_agent_score"`
	GoalAgentConfidence       float64 `json:"goal_agent_confidence"`
	InvestmentAgentPrediction string  `json:"investment_agent_prediction"`
}

// Recommendation is a generated strategy bound to the goal it answers.
// FeedbackAnalysis is nil until feedback on this recommendation has been
// processed.
type Recommendation struct {
	ID               string            `json:"id"`
	Goal             Goal              `json:"goal"`
	Strategy         Strategy          `json:"strategy"`
	AgentInsights    AgentInsights     `json:"agent_insights"`
	Presentation     string            `json:"presentation"`
	MarketContext    string            `json:"market_context,omitempty"`
	FeedbackAnalysis *FeedbackAnalysis `json:"feedback_analysis,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// GenerateStrategyRequest is the request body for strategy generation.
type GenerateStrategyRequest struct {
	GoalText          string  `json:"goal_text"`
	RiskTolerance     int     `json:"risk_tolerance"`
	InvestmentHorizon int     `json:"investment_horizon"`
	PortfolioSize     float64 `json:"portfolio_size"`
}

// StrategyResponse is the response body for strategy generation.
type StrategyResponse struct {
	RecommendationID string        `json:"recommendation_id"`
	StructuredGoal   Goal          `json:"structured_goal"`
	Strategy         Strategy      `json:"strategy"`
	AgentInsights    AgentInsights `json:"agent_insights"`
	Presentation     string        `json:"presentation"`
}

// FeedbackRequest is the request body for feedback processing.
type FeedbackRequest struct {
	RecommendationID string `json:"recommendation_id"`
	FeedbackText     string `json:"feedback_text"`
}

// FeedbackResponse is the response body for feedback processing.
type FeedbackResponse struct {
	FeedbackAnalysis    string   `json:"feedback_analysis"`
	RiskAdjustment      string   `json:"risk_adjustment"`
	PreferenceChanges   []string `json:"preference_changes"`
	StrategyAdjustments []string `json:"strategy_adjustments"`
}
