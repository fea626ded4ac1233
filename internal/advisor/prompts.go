package advisor

import (
	"fmt"
	"strings"

	"github.com/stratfolio/stratfolio/internal/models"
)

const (
	strategySystemPrompt = "You are a financial advisor AI assistant. Analyze the provided information and respond with valid JSON according to the requested format."

	feedbackSystemPrompt = "You are a financial advisor AI assistant. Analyze user feedback on an investment recommendation and respond with valid JSON according to the requested format."

	presentationSystemPrompt = "You are a financial advisor. Present the given investment strategy to the user in clear, friendly prose. Do not invent numbers that are not in the strategy."
)

// buildStrategyPrompt renders the user prompt for strategy generation.
func buildStrategyPrompt(goal models.Goal, portfolioSize float64, marketContext string, knowledge []string) string {
	var sb strings.Builder

	sb.WriteString("Based on the structured goal, knowledge base and market data below, ")
	sb.WriteString("recommend an investment strategy.\n\n")

	sb.WriteString("STRUCTURED GOAL:\n")
	sb.WriteString(fmt.Sprintf("- Goal type: %s\n", goal.GoalType))
	sb.WriteString(fmt.Sprintf("- Investment horizon: %s\n", goal.InvestmentHorizon))
	sb.WriteString(fmt.Sprintf("- Risk tolerance: %s\n", goal.RiskTolerance))
	if len(goal.Preferences) > 0 {
		sb.WriteString(fmt.Sprintf("- Preferences: %s\n", strings.Join(goal.Preferences, ", ")))
	}
	if portfolioSize > 0 {
		sb.WriteString(fmt.Sprintf("- Portfolio size: $%.2f\n", portfolioSize))
	}
	sb.WriteString(fmt.Sprintf("- Original request: %s\n\n", goal.RawText))

	if len(knowledge) > 0 {
		sb.WriteString("=== KNOWLEDGE BASE ===\n\n")
		for _, chunk := range knowledge {
			sb.WriteString(chunk)
			sb.WriteString("\n\n")
		}
	}

	if marketContext != "" {
		sb.WriteString("=== MARKET DATA ===\n\n")
		sb.WriteString(marketContext)
		sb.WriteString("\n\n")
	}

	sb.WriteString("=== RESPONSE FORMAT ===\n\n")
	sb.WriteString("Respond with a JSON object, percentages summing to approximately 100%:\n\n")
	sb.WriteString(`{
  "allocation": {"stocks": 60.0, "bonds": 30.0, "international": 10.0},
  "products": [{"name": "VTI", "percentage": 60.0, "description": "Total US stock market ETF"}],
  "rationale": "Brief reasoning for this allocation."
}
`)

	return sb.String()
}

// buildFeedbackPrompt renders the user prompt for feedback analysis.
func buildFeedbackPrompt(rec *models.Recommendation, feedbackText string) string {
	var sb strings.Builder

	sb.WriteString("The user received the investment recommendation below and responded with feedback. ")
	sb.WriteString("Analyze the feedback and determine how the strategy should change.\n\n")

	sb.WriteString("RECOMMENDATION:\n")
	sb.WriteString(fmt.Sprintf("- Risk tolerance: %s\n", rec.Goal.RiskTolerance))
	sb.WriteString("- Allocation:\n")
	for asset, pct := range rec.Strategy.Allocation {
		sb.WriteString(fmt.Sprintf("    %s: %.1f%%\n", asset, pct))
	}
	if rec.Strategy.Rationale != "" {
		sb.WriteString(fmt.Sprintf("- Rationale: %s\n", rec.Strategy.Rationale))
	}

	sb.WriteString("\nUSER FEEDBACK:\n")
	sb.WriteString(feedbackText)
	sb.WriteString("\n\n")

	sb.WriteString("=== RESPONSE FORMAT ===\n\n")
	sb.WriteString("Respond with a JSON object. risk_adjustment must be exactly one of \"higher\", \"lower\" or \"no change\":\n\n")
	sb.WriteString(`{
  "feedback_analysis": "Summary of what the user wants changed.",
  "risk_adjustment": "no change",
  "preference_changes": [],
  "strategy_adjustments": []
}
`)

	return sb.String()
}

// buildPresentationPrompt renders the user prompt for the presentation call.
func buildPresentationPrompt(rec *models.Recommendation) string {
	var sb strings.Builder

	sb.WriteString("Present this investment strategy to the user in 3-5 sentences:\n\n")
	sb.WriteString(fmt.Sprintf("Goal: %s (%s horizon, %s risk)\n", rec.Goal.GoalType, rec.Goal.InvestmentHorizon, rec.Goal.RiskTolerance))
	sb.WriteString("Allocation:\n")
	for asset, pct := range rec.Strategy.Allocation {
		sb.WriteString(fmt.Sprintf("  %s: %.1f%%\n", asset, pct))
	}
	for _, product := range rec.Strategy.Products {
		sb.WriteString(fmt.Sprintf("  %s (%.1f%%): %s\n", product.Name, product.Percentage, product.Description))
	}
	if rec.Strategy.Rationale != "" {
		sb.WriteString("Rationale: " + rec.Strategy.Rationale + "\n")
	}

	return sb.String()
}

// fallbackPresentation renders a plain-text presentation when the
// presentation call fails. The recommendation is still usable without it.
func fallbackPresentation(rec *models.Recommendation) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Here is a %s risk strategy for your %s goal (%s horizon). Suggested allocation:",
		rec.Goal.RiskTolerance, rec.Goal.GoalType, rec.Goal.InvestmentHorizon))
	for _, asset := range sortedAssets(rec.Strategy.Allocation) {
		sb.WriteString(fmt.Sprintf(" %s %.0f%%,", asset, rec.Strategy.Allocation[asset]))
	}
	text := strings.TrimSuffix(sb.String(), ",") + "."
	if rec.Strategy.Rationale != "" {
		text += " " + rec.Strategy.Rationale
	}
	return text
}
