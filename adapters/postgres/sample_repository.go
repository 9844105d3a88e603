package postgres

import (
	"context"
	"fmt"

	"labelops/domain/labeling"
	"labelops/ports"

	"github.com/jmoiron/sqlx"
)

// sampleRepository implements the SampleRepository interface
type sampleRepository struct {
	db *sqlx.DB
}

// NewSampleRepository creates a new sample repository
func NewSampleRepository(db *sqlx.DB) ports.SampleRepository {
	return &sampleRepository{db: db}
}

// InsertBatch inserts one batch of samples in a single statement
func (r *sampleRepository) InsertBatch(ctx context.Context, samples []labeling.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO text_samples (text, true_sentiment, complexity_score, word_count, source)
		VALUES (:text, :true_sentiment, :complexity_score, :word_count, :source)`, samples)
	if err != nil {
		return fmt.Errorf("failed to insert samples: %w", err)
	}
	return nil
}

// List returns all samples ordered by id
func (r *sampleRepository) List(ctx context.Context) ([]labeling.Sample, error) {
	var samples []labeling.Sample
	err := r.db.SelectContext(ctx, &samples, `
		SELECT id, text, true_sentiment, complexity_score,
		       COALESCE(word_count, 0) AS word_count, COALESCE(source, '') AS source
		FROM text_samples
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list samples: %w", err)
	}
	return samples, nil
}

// Count returns the number of samples, filtered by true sentiment when one is given
func (r *sampleRepository) Count(ctx context.Context, sentiment labeling.Sentiment) (int, error) {
	var n int
	var err error
	if sentiment == "" {
		err = r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM text_samples`)
	} else {
		err = r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM text_samples WHERE true_sentiment = $1`, sentiment)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count samples: %w", err)
	}
	return n, nil
}
