package postgres

import (
	"context"
	"fmt"

	"labelops/domain/labeling"
	"labelops/ports"

	"github.com/jmoiron/sqlx"
)

// labelerRepository implements the LabelerRepository interface
type labelerRepository struct {
	db *sqlx.DB
}

// NewLabelerRepository creates a new labeler repository
func NewLabelerRepository(db *sqlx.DB) ports.LabelerRepository {
	return &labelerRepository{db: db}
}

// CreateAll inserts all labelers in one statement and returns the stored rows
func (r *labelerRepository) CreateAll(ctx context.Context, labelers []labeling.Labeler) ([]labeling.Labeler, error) {
	if len(labelers) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.Named(`
		INSERT INTO labelers (name, experience_level, base_accuracy, labels_per_hour, hourly_rate)
		VALUES (:name, :experience_level, :base_accuracy, :labels_per_hour, :hourly_rate)
		RETURNING id, name, experience_level, base_accuracy, labels_per_hour, hourly_rate`, labelers)
	if err != nil {
		return nil, fmt.Errorf("failed to bind labelers: %w", err)
	}

	var created []labeling.Labeler
	if err := r.db.SelectContext(ctx, &created, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to create labelers: %w", err)
	}
	return created, nil
}

// List returns all labelers, most accurate first
func (r *labelerRepository) List(ctx context.Context) ([]labeling.Labeler, error) {
	var labelers []labeling.Labeler
	err := r.db.SelectContext(ctx, &labelers, `
		SELECT id, name, experience_level, base_accuracy, labels_per_hour, hourly_rate
		FROM labelers
		ORDER BY base_accuracy DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list labelers: %w", err)
	}
	return labelers, nil
}

// Count returns the number of labelers
func (r *labelerRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM labelers`); err != nil {
		return 0, fmt.Errorf("failed to count labelers: %w", err)
	}
	return n, nil
}
