package advisor

import (
	"encoding/json"
	"strings"

	"github.com/stratfolio/stratfolio/internal/models"
)

// extractJSON finds and extracts the first valid JSON object from text using brace matching
func extractJSON(text string) string {
	// Find the first opening brace
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return ""
	}

	// Use brace counting to find matching closing brace
	braceCount := 0
	inString := false
	escaped := false

	for i := startIdx; i < len(text); i++ {
		ch := text[i]

		// Handle escape sequences in strings
		if escaped {
			escaped = false
			continue
		}

		if ch == '\\' {
			escaped = true
			continue
		}

		// Track if we're inside a string
		if ch == '"' {
			inString = !inString
			continue
		}

		// Only count braces outside of strings
		if !inString {
			if ch == '{' {
				braceCount++
			} else if ch == '}' {
				braceCount--
				if braceCount == 0 {
					// Found matching closing brace
					return text[startIdx : i+1]
				}
			}
		}
	}

	return ""
}

// rawStrategy mirrors the JSON shape the strategy prompt asks the model for.
type rawStrategy struct {
	Allocation map[string]interface{} `json:"allocation"`
	Products   []models.Product       `json:"products"`
	Rationale  string                 `json:"rationale"`
}

// ParseStrategyResponse extracts and validates the strategy JSON from raw
// model output. Any shape problem is reported as a MalformedResponseError.
func ParseStrategyResponse(responseText string) (models.Strategy, error) {
	jsonMatch := extractJSON(responseText)
	if jsonMatch == "" {
		return models.Strategy{}, &MalformedResponseError{Op: "strategy", Reason: "no JSON object in response"}
	}

	var raw rawStrategy
	if err := json.Unmarshal([]byte(jsonMatch), &raw); err != nil {
		return models.Strategy{}, &MalformedResponseError{Op: "strategy", Reason: "invalid JSON: " + err.Error()}
	}

	if len(raw.Allocation) == 0 {
		return models.Strategy{}, &MalformedResponseError{Op: "strategy", Reason: "empty allocation"}
	}

	allocation := make(map[string]float64, len(raw.Allocation))
	for asset, val := range raw.Allocation {
		num, ok := val.(float64)
		if !ok {
			return models.Strategy{}, &MalformedResponseError{Op: "strategy", Reason: "non-numeric allocation for " + asset}
		}
		allocation[asset] = num
	}

	return models.Strategy{
		Allocation: allocation,
		Products:   raw.Products,
		Rationale:  raw.Rationale,
	}, nil
}

// ParseFeedbackResponse extracts and validates the feedback analysis JSON
// from raw model output.
func ParseFeedbackResponse(responseText string) (models.FeedbackAnalysis, error) {
	jsonMatch := extractJSON(responseText)
	if jsonMatch == "" {
		return models.FeedbackAnalysis{}, &MalformedResponseError{Op: "feedback", Reason: "no JSON object in response"}
	}

	var raw struct {
		Analysis            string   `json:"feedback_analysis"`
		RiskAdjustment      string   `json:"risk_adjustment"`
		PreferenceChanges   []string `json:"preference_changes"`
		StrategyAdjustments []string `json:"strategy_adjustments"`
	}
	if err := json.Unmarshal([]byte(jsonMatch), &raw); err != nil {
		return models.FeedbackAnalysis{}, &MalformedResponseError{Op: "feedback", Reason: "invalid JSON: " + err.Error()}
	}

	if raw.Analysis == "" {
		return models.FeedbackAnalysis{}, &MalformedResponseError{Op: "feedback", Reason: "missing feedback_analysis"}
	}

	adjustment, err := models.ParseRiskAdjustment(raw.RiskAdjustment)
	if err != nil {
		return models.FeedbackAnalysis{}, &MalformedResponseError{Op: "feedback", Reason: err.Error()}
	}

	return models.FeedbackAnalysis{
		Analysis:            raw.Analysis,
		RiskAdjustment:      adjustment,
		PreferenceChanges:   raw.PreferenceChanges,
		StrategyAdjustments: raw.StrategyAdjustments,
	}, nil
}
