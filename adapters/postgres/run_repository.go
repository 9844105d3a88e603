package postgres

import (
	"context"
	"fmt"

	"labelops/domain/labeling"
	"labelops/ports"

	"github.com/jmoiron/sqlx"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL simulation run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// Record stores a finished simulation run
func (r *RunRepositoryImpl) Record(ctx context.Context, run *labeling.SimulationRun) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO simulation_runs (
			id, seed, attempted, inserted, failed_batches, started_at, finished_at
		) VALUES (
			:id, :seed, :attempted, :inserted, :failed_batches, :started_at, :finished_at
		)`, run)
	if err != nil {
		return fmt.Errorf("failed to record simulation run: %w", err)
	}
	return nil
}

// Latest returns the most recent runs, newest first
func (r *RunRepositoryImpl) Latest(ctx context.Context, limit int) ([]labeling.SimulationRun, error) {
	var runs []labeling.SimulationRun
	err := r.db.SelectContext(ctx, &runs, `
		SELECT id, seed, attempted, inserted, failed_batches, started_at, finished_at
		FROM simulation_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulation runs: %w", err)
	}
	return runs, nil
}
