package models

import "fmt"

// RiskAdjustment is the direction a feedback analysis moves the risk level.
type RiskAdjustment string

// Risk adjustment constants.
const (
	RiskHigher   RiskAdjustment = "higher"
	RiskLower    RiskAdjustment = "lower"
	RiskNoChange RiskAdjustment = "no change"
)

// ParseRiskAdjustment validates a risk adjustment value coming off the wire.
func ParseRiskAdjustment(s string) (RiskAdjustment, error) {
	switch RiskAdjustment(s) {
	case RiskHigher, RiskLower, RiskNoChange:
		return RiskAdjustment(s), nil
	}
	return "", fmt.Errorf("unknown risk adjustment %q", s)
}

// FeedbackAnalysis is the structured result of analyzing user feedback on a
// recommendation.
type FeedbackAnalysis struct {
	Analysis            string         `json:"feedback_analysis"`
	RiskAdjustment      RiskAdjustment `json:"risk_adjustment"`
	PreferenceChanges   []string       `json:"preference_changes"`
	StrategyAdjustments []string       `json:"strategy_adjustments"`
}

// ApplyRiskAdjustment shifts a 1-3 risk slider value in the indicated
// direction, clamped to the valid range.
func ApplyRiskAdjustment(slider int, adj RiskAdjustment) int {
	switch adj {
	case RiskHigher:
		if slider < 3 {
			return slider + 1
		}
	case RiskLower:
		if slider > 1 {
			return slider - 1
		}
	}
	return slider
}
