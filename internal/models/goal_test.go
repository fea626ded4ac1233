package models

import (
	"reflect"
	"testing"
)

func TestHorizonFromYears(t *testing.T) {
	tests := []struct {
		name     string
		years    int
		expected Horizon
	}{
		{"One year is short-term", 1, HorizonShortTerm},
		{"Nine years is short-term", 9, HorizonShortTerm},
		{"Ten years is medium-term", 10, HorizonMediumTerm},
		{"Twenty years is medium-term", 20, HorizonMediumTerm},
		{"Twenty-one years is long-term", 21, HorizonLongTerm},
		{"Forty years is long-term", 40, HorizonLongTerm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HorizonFromYears(tt.years); got != tt.expected {
				t.Errorf("HorizonFromYears(%d) = %q, want %q", tt.years, got, tt.expected)
			}
		})
	}
}

func TestRiskFromSlider(t *testing.T) {
	tests := []struct {
		name     string
		slider   int
		expected RiskTolerance
		ok       bool
	}{
		{"One maps to low", 1, RiskLow, true},
		{"Two maps to medium", 2, RiskMedium, true},
		{"Three maps to high", 3, RiskHigh, true},
		{"Zero is invalid", 0, "", false},
		{"Four is invalid", 4, "", false},
		{"Negative is invalid", -1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RiskFromSlider(tt.slider)
			if ok != tt.ok {
				t.Fatalf("RiskFromSlider(%d) ok = %v, want %v", tt.slider, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("RiskFromSlider(%d) = %q, want %q", tt.slider, got, tt.expected)
			}
		})
	}
}

func TestClassifyGoalType(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected GoalType
	}{
		{"Retirement keyword", "I want to retire comfortably at 60", GoalTypeRetirement},
		{"Education keyword", "Saving for my kid's college tuition", GoalTypeEducation},
		{"House keyword", "Need a down payment on a house", GoalTypeHouse},
		{"Wealth keyword", "I just want to grow my money", GoalTypeWealth},
		{"No match falls back to general", "something unusual", GoalTypeGeneral},
		{"Case insensitive", "RETIREMENT planning", GoalTypeRetirement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyGoalType(tt.text); got != tt.expected {
				t.Errorf("ClassifyGoalType(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestExtractPreferences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"Single preference", "I prefer low-cost ETF investing", []string{"ETF"}},
		{"Multiple preferences", "Mix of stocks and bonds please", []string{"stocks", "bonds"}},
		{"No preferences", "just make me money", nil},
		{"Case insensitive", "Real Estate exposure would be nice", []string{"real estate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPreferences(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractPreferences(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestNewGoal(t *testing.T) {
	goal, ok := NewGoal("Save for retirement with ETF exposure", 2, 25)
	if !ok {
		t.Fatal("expected goal to be built")
	}
	if goal.GoalType != GoalTypeRetirement {
		t.Errorf("goal type = %q, want retirement", goal.GoalType)
	}
	if goal.InvestmentHorizon != HorizonLongTerm {
		t.Errorf("horizon = %q, want long-term", goal.InvestmentHorizon)
	}
	if goal.RiskTolerance != RiskMedium {
		t.Errorf("risk = %q, want medium", goal.RiskTolerance)
	}
	if !reflect.DeepEqual(goal.Preferences, []string{"ETF"}) {
		t.Errorf("preferences = %v, want [ETF]", goal.Preferences)
	}

	if _, ok := NewGoal("anything", 5, 10); ok {
		t.Error("expected invalid risk slider to be rejected")
	}
}

func TestApplyRiskAdjustment(t *testing.T) {
	tests := []struct {
		name     string
		slider   int
		adj      RiskAdjustment
		expected int
	}{
		{"Higher from low", 1, RiskHigher, 2},
		{"Higher clamped at high", 3, RiskHigher, 3},
		{"Lower from high", 3, RiskLower, 2},
		{"Lower clamped at low", 1, RiskLower, 1},
		{"No change", 2, RiskNoChange, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyRiskAdjustment(tt.slider, tt.adj); got != tt.expected {
				t.Errorf("ApplyRiskAdjustment(%d, %q) = %d, want %d", tt.slider, tt.adj, got, tt.expected)
			}
		})
	}
}
