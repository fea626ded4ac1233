package database

import (
	"context"
	"sync"

	"github.com/stratfolio/stratfolio/internal/models"
)

// MemoryRecommendationRepository keeps recommendations in an in-process map.
// It backs the server when no database is configured.
type MemoryRecommendationRepository struct {
	mu   sync.RWMutex
	recs map[string]*models.Recommendation
}

// NewMemoryRecommendationRepository creates an empty in-memory repository.
func NewMemoryRecommendationRepository() *MemoryRecommendationRepository {
	return &MemoryRecommendationRepository{
		recs: make(map[string]*models.Recommendation),
	}
}

// Store inserts a recommendation.
func (r *MemoryRecommendationRepository) Store(ctx context.Context, rec *models.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *rec
	r.recs[rec.ID] = &clone
	return nil
}

// Get fetches a recommendation by id.
func (r *MemoryRecommendationRepository) Get(ctx context.Context, id string) (*models.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.recs[id]
	if !ok {
		return nil, ErrRecommendationNotFound
	}

	clone := *rec
	return &clone, nil
}

// AttachFeedback records the feedback analysis on a stored recommendation.
func (r *MemoryRecommendationRepository) AttachFeedback(ctx context.Context, id string, analysis models.FeedbackAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recs[id]
	if !ok {
		return ErrRecommendationNotFound
	}

	rec.FeedbackAnalysis = &analysis
	return nil
}
