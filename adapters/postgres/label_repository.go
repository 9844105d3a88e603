package postgres

import (
	"context"
	"fmt"

	"labelops/domain/labeling"
	"labelops/ports"

	"github.com/jmoiron/sqlx"
)

// labelRepository implements the LabelRepository interface
type labelRepository struct {
	db *sqlx.DB
}

// NewLabelRepository creates a new label repository
func NewLabelRepository(db *sqlx.DB) ports.LabelRepository {
	return &labelRepository{db: db}
}

// InsertBatch writes one batch of labels as a single multi-row insert.
// The whole batch succeeds or fails together.
func (r *labelRepository) InsertBatch(ctx context.Context, labels []labeling.Label) error {
	if len(labels) == 0 {
		return nil
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO labels (
			sample_id, labeler_id, predicted_sentiment, confidence_score,
			time_spent_seconds, is_correct, labeled_at
		) VALUES (
			:sample_id, :labeler_id, :predicted_sentiment, :confidence_score,
			:time_spent_seconds, :is_correct, :labeled_at
		)`, labels)
	if err != nil {
		return fmt.Errorf("failed to insert labels: %w", err)
	}
	return nil
}

// List returns every label
func (r *labelRepository) List(ctx context.Context) ([]labeling.Label, error) {
	var labels []labeling.Label
	err := r.db.SelectContext(ctx, &labels, `
		SELECT id, sample_id, labeler_id, predicted_sentiment, confidence_score,
		       time_spent_seconds, is_correct, labeled_at
		FROM labels
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// Count returns the number of labels
func (r *labelRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM labels`); err != nil {
		return 0, fmt.Errorf("failed to count labels: %w", err)
	}
	return n, nil
}
