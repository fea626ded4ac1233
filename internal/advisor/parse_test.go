package advisor

import (
	"errors"
	"testing"

	"github.com/stratfolio/stratfolio/internal/models"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Bare object", `{"a": 1}`, `{"a": 1}`},
		{"Object with prose around it", `Here you go: {"a": 1} hope that helps`, `{"a": 1}`},
		{"Nested object", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"Braces inside strings ignored", `{"a": "b } c"}`, `{"a": "b } c"}`},
		{"Escaped quotes", `{"a": "say \"hi\""}`, `{"a": "say \"hi\""}`},
		{"No object", "no json here", ""},
		{"Unbalanced braces", `{"a": 1`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.expected {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseStrategyResponse(t *testing.T) {
	response := `Here is my recommendation:
{
  "allocation": {"stocks": 60.0, "bonds": 30.0, "international": 10.0},
  "products": [{"name": "VTI", "percentage": 60.0, "description": "Total market ETF"}],
  "rationale": "Balanced growth."
}`

	strategy, err := ParseStrategyResponse(response)
	if err != nil {
		t.Fatalf("ParseStrategyResponse returned error: %v", err)
	}

	if got := strategy.Allocation["stocks"]; got != 60.0 {
		t.Errorf("stocks allocation = %.1f, want 60.0", got)
	}
	if len(strategy.Products) != 1 || strategy.Products[0].Name != "VTI" {
		t.Errorf("unexpected products: %+v", strategy.Products)
	}
	if strategy.Rationale != "Balanced growth." {
		t.Errorf("unexpected rationale: %q", strategy.Rationale)
	}
}

func TestParseStrategyResponseMalformed(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"No JSON at all", "I cannot produce an allocation right now."},
		{"Empty allocation", `{"allocation": {}, "rationale": "x"}`},
		{"Non-numeric allocation", `{"allocation": {"stocks": "sixty"}}`},
		{"Missing allocation key", `{"rationale": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStrategyResponse(tt.response)
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}

func TestParseFeedbackResponse(t *testing.T) {
	response := `{
  "feedback_analysis": "The user wants less risk.",
  "risk_adjustment": "lower",
  "preference_changes": ["bonds"],
  "strategy_adjustments": ["increase bond allocation"]
}`

	analysis, err := ParseFeedbackResponse(response)
	if err != nil {
		t.Fatalf("ParseFeedbackResponse returned error: %v", err)
	}

	if analysis.RiskAdjustment != models.RiskLower {
		t.Errorf("risk adjustment = %q, want lower", analysis.RiskAdjustment)
	}
	if analysis.Analysis != "The user wants less risk." {
		t.Errorf("unexpected analysis: %q", analysis.Analysis)
	}
}

func TestParseFeedbackResponseMalformed(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"No JSON", "sorry"},
		{"Missing analysis", `{"risk_adjustment": "lower"}`},
		{"Unknown adjustment", `{"feedback_analysis": "x", "risk_adjustment": "sideways"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeedbackResponse(tt.response)
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}
