// Package advisor generates investment strategy recommendations and analyzes
// user feedback on them, driving the revision loop.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/stratfolio/stratfolio/internal/knowledge"
	"github.com/stratfolio/stratfolio/internal/marketdata"
	"github.com/stratfolio/stratfolio/internal/metrics"
	"github.com/stratfolio/stratfolio/internal/models"
)

const knowledgeTopK = 3

// Engine produces recommendations and feedback analyses.
type Engine interface {
	GenerateStrategy(ctx context.Context, req models.GenerateStrategyRequest) (*models.Recommendation, error)
	AnalyzeFeedback(ctx context.Context, rec *models.Recommendation, feedbackText string) (models.FeedbackAnalysis, error)
}

// LLMEngine is the production Engine. It assembles goal, knowledge and
// market context into prompts and parses the model's JSON responses.
type LLMEngine struct {
	completer Completer
	market    marketdata.Provider
	kb        *knowledge.Base
	collector *metrics.Collector
	logger    *slog.Logger
	rng       *rand.Rand
}

// NewLLMEngine constructs the production engine. The knowledge base and
// collector may be nil.
func NewLLMEngine(completer Completer, market marketdata.Provider, kb *knowledge.Base, collector *metrics.Collector, logger *slog.Logger) *LLMEngine {
	return &LLMEngine{
		completer: completer,
		market:    market,
		kb:        kb,
		collector: collector,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateStrategy runs the full recommendation pipeline: structure the
// goal, gather market and knowledge context, call the model, parse the
// strategy, then produce a prose presentation.
func (e *LLMEngine) GenerateStrategy(ctx context.Context, req models.GenerateStrategyRequest) (*models.Recommendation, error) {
	goal, ok := models.NewGoal(req.GoalText, req.RiskTolerance, req.InvestmentHorizon)
	if !ok {
		return nil, fmt.Errorf("invalid risk tolerance: %d", req.RiskTolerance)
	}

	marketContext := ""
	symbols := marketdata.SymbolsForPreferences(goal.Preferences)
	snapshot, err := e.market.Snapshot(ctx, symbols)
	if err != nil {
		// Market context enriches the prompt but the strategy does not
		// depend on it, so a data outage is not fatal.
		e.logger.Warn("market snapshot failed", "error", err, "symbols", symbols)
	} else {
		marketContext = snapshot.Text
	}

	var chunks []string
	if e.kb != nil {
		chunks = e.kb.Retrieve(goal.RawText+" "+string(goal.GoalType)+" "+string(goal.RiskTolerance), knowledgeTopK)
		if len(chunks) == 0 {
			chunks = e.kb.All()
		}
	}

	prompt := buildStrategyPrompt(goal, req.PortfolioSize, marketContext, chunks)

	response, usage, err := e.completer.Complete(ctx, "strategy", strategySystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("strategy completion: %w", err)
	}

	strategy, err := ParseStrategyResponse(response)
	if err != nil {
		e.collector.RecordMalformedResponse()
		e.logger.Error("unparseable strategy response", "error", err, "response", response)
		return nil, err
	}

	rec := &models.Recommendation{
		ID:            "rec_" + uuid.NewString(),
		Goal:          goal,
		Strategy:      strategy,
		AgentInsights: e.simulateInsights(),
		MarketContext: marketContext,
		CreatedAt:     time.Now().UTC(),
	}

	rec.Presentation = e.present(ctx, rec)

	e.collector.RecordRecommendation(string(goal.RiskTolerance))
	e.logger.Info("generated recommendation",
		"recommendation_id", rec.ID,
		"goal_type", goal.GoalType,
		"risk_tolerance", goal.RiskTolerance,
		"tokens_used", usage.TotalTokens)

	return rec, nil
}

// AnalyzeFeedback asks the model how the strategy should change in response
// to the user's feedback on an existing recommendation.
func (e *LLMEngine) AnalyzeFeedback(ctx context.Context, rec *models.Recommendation, feedbackText string) (models.FeedbackAnalysis, error) {
	prompt := buildFeedbackPrompt(rec, feedbackText)

	response, usage, err := e.completer.Complete(ctx, "feedback", feedbackSystemPrompt, prompt)
	if err != nil {
		return models.FeedbackAnalysis{}, fmt.Errorf("feedback completion: %w", err)
	}

	analysis, err := ParseFeedbackResponse(response)
	if err != nil {
		e.collector.RecordMalformedResponse()
		e.logger.Error("unparseable feedback response", "error", err, "response", response)
		return models.FeedbackAnalysis{}, err
	}

	e.collector.RecordFeedback(string(analysis.RiskAdjustment))
	e.logger.Info("analyzed feedback",
		"recommendation_id", rec.ID,
		"risk_adjustment", analysis.RiskAdjustment,
		"tokens_used", usage.TotalTokens)

	return analysis, nil
}

// present runs the presentation call, falling back to a template when the
// model is unavailable or fails.
func (e *LLMEngine) present(ctx context.Context, rec *models.Recommendation) string {
	response, _, err := e.completer.Complete(ctx, "presentation", presentationSystemPrompt, buildPresentationPrompt(rec))
	if err != nil || response == "" {
		e.logger.Warn("presentation call failed, using fallback", "error", err, "recommendation_id", rec.ID)
		return fallbackPresentation(rec)
	}
	return response
}

// simulateInsights produces the per-agent confidence signals. The scoring
// agents are not wired to real models yet, so the signals are sampled from
// fixed plausible ranges.
func (e *LLMEngine) simulateInsights() models.AgentInsights {
	return models.AgentInsights{
		RiskAgentScore:            6 + e.rng.Intn(4),
		GoalAgentConfidence:       0.70 + e.rng.Float64()*0.25,
		InvestmentAgentPrediction: fmt.Sprintf("%d%% annual return", 5+e.rng.Intn(8)),
	}
}

func sortedAssets(allocation map[string]float64) []string {
	assets := make([]string, 0, len(allocation))
	for asset := range allocation {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}
