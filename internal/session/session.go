// Package session drives the client-side advisory conversation: it walks a
// goal through recommendation, feedback and revision until the user is
// satisfied.
package session

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	"github.com/stratfolio/stratfolio/internal/models"
)

// State is the position of a session in the advisory loop.
type State string

// Session states. A session holds at most one recommendation awaiting
// feedback at any time.
const (
	StateIdle                     State = "idle"
	StateAwaitingFirstGoal        State = "awaiting_first_goal"
	StateGeneratingRecommendation State = "generating_recommendation"
	StateAwaitingFeedback         State = "awaiting_feedback"
	StateAnalyzingFeedback        State = "analyzing_feedback"
	StateGeneratingRevision       State = "generating_revision"
	StateSatisfied                State = "satisfied"
)

// TurnKind classifies a transcript entry.
type TurnKind string

// Turn kinds.
const (
	TurnUser           TurnKind = "user"
	TurnRecommendation TurnKind = "recommendation"
	TurnSystem         TurnKind = "system"
	TurnError          TurnKind = "error"
)

// Turn is a single transcript entry. The transcript is append-only.
type Turn struct {
	Kind             TurnKind
	Text             string
	RecommendationID string
}

// Client is the backend surface the session needs.
type Client interface {
	GenerateStrategy(ctx context.Context, req models.GenerateStrategyRequest) (*models.StrategyResponse, error)
	ProcessFeedback(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackResponse, error)
}

// ValidationError reports locally rejected input. No backend call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidStateError(op string, state State) error {
	return fmt.Errorf("%s not allowed in state %q", op, state)
}

// satisfactionWords end the loop when any of them appears in feedback.
// Matching is case-insensitive substring, so "not good" also terminates;
// that is the documented behavior of the lexicon.
var satisfactionWords = []string{"satisfied", "good", "great", "perfect"}

const closingMessage = "Glad the strategy works for you. Good luck with your investments!"

// Controller runs the advisory loop for one user.
type Controller struct {
	client Client
	logger *slog.Logger

	state      State
	transcript []Turn

	// Slider inputs carried across revisions.
	riskSlider    int
	horizonYears  int
	portfolioSize float64

	// active is the recommendation currently awaiting feedback, nil
	// otherwise.
	active *models.StrategyResponse
}

// NewController creates an idle session controller.
func NewController(client Client, logger *slog.Logger) *Controller {
	return &Controller{
		client: client,
		logger: logger,
		state:  StateIdle,
	}
}

// Start moves the session from idle to awaiting the first goal.
func (c *Controller) Start() error {
	if c.state != StateIdle {
		return invalidStateError("start", c.state)
	}

	c.state = StateAwaitingFirstGoal
	c.append(Turn{Kind: TurnSystem, Text: "Tell me about your investment goal."})
	return nil
}

// State returns the current session state.
func (c *Controller) State() State {
	return c.state
}

// Transcript returns a copy of the conversation so far.
func (c *Controller) Transcript() []Turn {
	return append([]Turn(nil), c.transcript...)
}

// Active returns the recommendation currently awaiting feedback, or nil.
func (c *Controller) Active() *models.StrategyResponse {
	return c.active
}

// SubmitGoal sends the first goal to the backend and produces the initial
// recommendation. Valid only while awaiting the first goal.
func (c *Controller) SubmitGoal(ctx context.Context, goalText string, riskSlider, horizonYears int, portfolioSize float64) error {
	if c.state != StateAwaitingFirstGoal {
		return invalidStateError("goal submission", c.state)
	}

	if strings.TrimSpace(goalText) == "" {
		return &ValidationError{Message: "goal text must not be empty"}
	}
	if riskSlider < 1 || riskSlider > 3 {
		return &ValidationError{Message: "risk tolerance must be between 1 and 3"}
	}

	c.append(Turn{Kind: TurnUser, Text: goalText})
	c.riskSlider = riskSlider
	c.horizonYears = horizonYears
	c.portfolioSize = portfolioSize

	c.state = StateGeneratingRecommendation

	resp, err := c.client.GenerateStrategy(ctx, models.GenerateStrategyRequest{
		GoalText:          goalText,
		RiskTolerance:     riskSlider,
		InvestmentHorizon: horizonYears,
		PortfolioSize:     portfolioSize,
	})
	if err != nil {
		// The goal was not consumed; let the user resubmit it.
		c.state = StateAwaitingFirstGoal
		c.append(Turn{Kind: TurnError, Text: "Could not generate a recommendation: " + err.Error()})
		return err
	}

	c.acceptRecommendation(resp)
	return nil
}

// SubmitFeedback processes feedback on the active recommendation. If the
// feedback signals satisfaction the loop ends without a backend call;
// otherwise the feedback is analyzed and a revised recommendation replaces
// the active one.
func (c *Controller) SubmitFeedback(ctx context.Context, feedbackText string) error {
	if c.state != StateAwaitingFeedback {
		return invalidStateError("feedback submission", c.state)
	}

	if strings.TrimSpace(feedbackText) == "" {
		return &ValidationError{Message: "feedback text must not be empty"}
	}

	c.append(Turn{Kind: TurnUser, Text: feedbackText})

	if isSatisfied(feedbackText) {
		c.state = StateSatisfied
		c.active = nil
		c.append(Turn{Kind: TurnSystem, Text: closingMessage})
		return nil
	}

	prior := c.active
	c.state = StateAnalyzingFeedback

	feedback, err := c.client.ProcessFeedback(ctx, models.FeedbackRequest{
		RecommendationID: prior.RecommendationID,
		FeedbackText:     feedbackText,
	})
	if err != nil {
		// Keep the prior recommendation active so the feedback can be
		// resubmitted.
		c.state = StateAwaitingFeedback
		c.append(Turn{Kind: TurnError, Text: "Could not analyze feedback: " + err.Error()})
		return err
	}

	c.append(Turn{Kind: TurnSystem, Text: feedback.FeedbackAnalysis})

	adjustment, aerr := models.ParseRiskAdjustment(feedback.RiskAdjustment)
	if aerr != nil {
		adjustment = models.RiskNoChange
	}
	c.riskSlider = models.ApplyRiskAdjustment(c.riskSlider, adjustment)

	c.state = StateGeneratingRevision

	resp, err := c.client.GenerateStrategy(ctx, models.GenerateStrategyRequest{
		GoalText:          c.revisionGoalText(feedbackText, feedback),
		RiskTolerance:     c.riskSlider,
		InvestmentHorizon: c.horizonYears,
		PortfolioSize:     c.portfolioSize,
	})
	if err != nil {
		c.state = StateAwaitingFeedback
		c.active = prior
		c.append(Turn{Kind: TurnError, Text: "Could not generate a revised recommendation: " + err.Error()})
		return err
	}

	c.acceptRecommendation(resp)
	return nil
}

// revisionGoalText rebuilds the goal text for a revision, carrying the
// original goal plus the user's feedback verbatim so the backend sees what
// changed.
func (c *Controller) revisionGoalText(feedbackText string, feedback *models.FeedbackResponse) string {
	var sb strings.Builder

	original := ""
	for _, turn := range c.transcript {
		if turn.Kind == TurnUser {
			original = turn.Text
			break
		}
	}

	sb.WriteString(original)
	sb.WriteString("\n\nRevise the previous strategy based on this feedback: ")
	sb.WriteString(feedbackText)
	if len(feedback.StrategyAdjustments) > 0 {
		sb.WriteString("\nRequested adjustments: ")
		sb.WriteString(strings.Join(feedback.StrategyAdjustments, "; "))
	}

	return sb.String()
}

func (c *Controller) acceptRecommendation(resp *models.StrategyResponse) {
	c.active = resp
	c.state = StateAwaitingFeedback
	c.append(Turn{
		Kind:             TurnRecommendation,
		Text:             resp.Presentation,
		RecommendationID: resp.RecommendationID,
	})
	c.logger.Info("recommendation received",
		"recommendation_id", resp.RecommendationID,
		"risk_tolerance", resp.StructuredGoal.RiskTolerance)
}

func (c *Controller) append(turn Turn) {
	c.transcript = append(c.transcript, turn)
}

func isSatisfied(feedbackText string) bool {
	lower := strings.ToLower(feedbackText)
	for _, word := range satisfactionWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
