package models

import "strings"

// GoalType categorizes what the user is investing for.
type GoalType string

// Goal type constants.
const (
	GoalTypeRetirement GoalType = "retirement"
	GoalTypeEducation  GoalType = "education"
	GoalTypeHouse      GoalType = "house"
	GoalTypeWealth     GoalType = "wealth"
	GoalTypeGeneral    GoalType = "general"
)

// Horizon buckets an investment horizon expressed in years.
type Horizon string

// Horizon constants.
const (
	HorizonShortTerm  Horizon = "short-term"
	HorizonMediumTerm Horizon = "medium-term"
	HorizonLongTerm   Horizon = "long-term"
)

// RiskTolerance is the textual form of the 1-3 risk slider.
type RiskTolerance string

// Risk tolerance constants.
const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// Goal is the structured representation of a user's investment objective.
// A Goal is immutable once created; revisions derive a new Goal from the
// prior one with an adjusted risk level.
type Goal struct {
	RawText           string        `json:"raw_text"`
	GoalType          GoalType      `json:"goal_type"`
	InvestmentHorizon Horizon       `json:"investment_horizon"`
	RiskTolerance     RiskTolerance `json:"risk_tolerance"`
	Preferences       []string      `json:"investment_preferences"`
}

// HorizonFromYears maps a horizon in years onto the three buckets:
// under 10 years is short-term, 10-20 is medium-term, over 20 is long-term.
func HorizonFromYears(years int) Horizon {
	switch {
	case years < 10:
		return HorizonShortTerm
	case years <= 20:
		return HorizonMediumTerm
	default:
		return HorizonLongTerm
	}
}

// RiskFromSlider maps the 1-3 risk slider to its textual form. The second
// return value reports whether the slider value was valid.
func RiskFromSlider(value int) (RiskTolerance, bool) {
	switch value {
	case 1:
		return RiskLow, true
	case 2:
		return RiskMedium, true
	case 3:
		return RiskHigh, true
	default:
		return "", false
	}
}

// goalTypeKeywords maps trigger words to goal types, checked in order so the
// more specific goals win over generic wealth-building language.
var goalTypeKeywords = []struct {
	goalType GoalType
	keywords []string
}{
	{GoalTypeRetirement, []string{"retirement", "retire", "pension"}},
	{GoalTypeEducation, []string{"education", "college", "university", "tuition", "school"}},
	{GoalTypeHouse, []string{"house", "home", "property", "down payment", "mortgage"}},
	{GoalTypeWealth, []string{"wealth", "grow my money", "build capital"}},
}

// ClassifyGoalType performs a best-effort keyword classification of the goal
// text. It is a heuristic, not a contract: unmatched text falls back to
// "general".
func ClassifyGoalType(text string) GoalType {
	lower := strings.ToLower(text)
	for _, entry := range goalTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.goalType
			}
		}
	}
	return GoalTypeGeneral
}

// preferenceKeywords are the instrument preferences the extractor recognizes
// in free text.
var preferenceKeywords = []string{"ETF", "stocks", "bonds", "real estate", "robo-advisor"}

// ExtractPreferences scans goal text for recognized instrument preferences.
func ExtractPreferences(text string) []string {
	lower := strings.ToLower(text)
	var prefs []string
	for _, keyword := range preferenceKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			prefs = append(prefs, keyword)
		}
	}
	return prefs
}

// NewGoal builds a structured Goal from free text and the slider inputs.
// Classification of goal type and preferences is best-effort; horizon and
// risk mapping is deterministic.
func NewGoal(text string, riskSlider, horizonYears int) (Goal, bool) {
	risk, ok := RiskFromSlider(riskSlider)
	if !ok {
		return Goal{}, false
	}

	return Goal{
		RawText:           text,
		GoalType:          ClassifyGoalType(text),
		InvestmentHorizon: HorizonFromYears(horizonYears),
		RiskTolerance:     risk,
		Preferences:       ExtractPreferences(text),
	}, true
}
