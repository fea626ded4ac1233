package advisor

import (
	"context"
	"testing"

	"github.com/stratfolio/stratfolio/internal/models"
)

func TestMockEngineGenerateStrategy(t *testing.T) {
	engine := NewMockEngine(testLogger())

	rec, err := engine.GenerateStrategy(context.Background(), models.GenerateStrategyRequest{
		GoalText:          "saving for a house",
		RiskTolerance:     1,
		InvestmentHorizon: 5,
	})
	if err != nil {
		t.Fatalf("GenerateStrategy returned error: %v", err)
	}

	if rec.Goal.GoalType != models.GoalTypeHouse {
		t.Errorf("goal type = %q, want house", rec.Goal.GoalType)
	}
	if got := rec.Strategy.Allocation["bonds"]; got != 50 {
		t.Errorf("low risk bonds allocation = %.0f, want 50", got)
	}
	if rec.Presentation == "" {
		t.Error("expected presentation to be populated")
	}
}

func TestMockEngineGenerateStrategyInvalidRisk(t *testing.T) {
	engine := NewMockEngine(testLogger())

	if _, err := engine.GenerateStrategy(context.Background(), models.GenerateStrategyRequest{
		GoalText:      "anything",
		RiskTolerance: 9,
	}); err == nil {
		t.Fatal("expected error for invalid risk tolerance")
	}
}

func TestMockEngineAnalyzeFeedback(t *testing.T) {
	engine := NewMockEngine(testLogger())
	rec := &models.Recommendation{}

	tests := []struct {
		name     string
		feedback string
		expected models.RiskAdjustment
	}{
		{"Too risky lowers risk", "this feels too risky for me", models.RiskLower},
		{"Safer lowers risk", "could you make it safer", models.RiskLower},
		{"More aggressive raises risk", "I want something more aggressive", models.RiskHigher},
		{"Too conservative raises risk", "this is too conservative for my taste", models.RiskHigher},
		{"Neutral feedback keeps risk", "can you add more detail on the bond funds", models.RiskNoChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := engine.AnalyzeFeedback(context.Background(), rec, tt.feedback)
			if err != nil {
				t.Fatalf("AnalyzeFeedback returned error: %v", err)
			}
			if analysis.RiskAdjustment != tt.expected {
				t.Errorf("risk adjustment = %q, want %q", analysis.RiskAdjustment, tt.expected)
			}
			if analysis.Analysis == "" {
				t.Error("expected non-empty analysis")
			}
		})
	}
}
