package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stratfolio/stratfolio/internal/models"
)

// ErrRecommendationNotFound is returned when a recommendation id is unknown.
var ErrRecommendationNotFound = errors.New("recommendation not found")

// RecommendationRepository persists recommendations in PostgreSQL as JSONB.
type RecommendationRepository struct {
	db *sql.DB
}

// NewRecommendationRepository creates a new repository
func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// Store inserts a recommendation.
func (r *RecommendationRepository) Store(ctx context.Context, rec *models.Recommendation) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO recommendations (id, payload, created_at) VALUES ($1, $2, $3)",
		rec.ID, payload, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}

	return nil
}

// Get fetches a recommendation by id.
func (r *RecommendationRepository) Get(ctx context.Context, id string) (*models.Recommendation, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT payload FROM recommendations WHERE id = $1", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrRecommendationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation: %w", err)
	}

	var rec models.Recommendation
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation: %w", err)
	}

	return &rec, nil
}

// AttachFeedback records the feedback analysis on a stored recommendation.
func (r *RecommendationRepository) AttachFeedback(ctx context.Context, id string, analysis models.FeedbackAnalysis) error {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	rec.FeedbackAnalysis = &analysis

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE recommendations SET payload = $1 WHERE id = $2", payload, id)
	if err != nil {
		return fmt.Errorf("failed to update recommendation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrRecommendationNotFound
	}

	return nil
}
