package migration

import (
	"context"

	"labelops/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Statements returns the schema statements in execution order
func (r *MigrationRunner) Statements() []Step {
	return []Step{
		{Name: "labelers table", SQL: createLabelersTable},
		{Name: "text_samples table", SQL: createTextSamplesTable},
		{Name: "labels table", SQL: createLabelsTable},
		{Name: "simulation_runs table", SQL: createSimulationRunsTable},
		{Name: "indexes", SQL: createIndexes},
	}
}

// Step is one named schema statement
type Step struct {
	Name string
	SQL  string
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, step := range r.Statements() {
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			return errors.Wrapf(err, "failed to create %s", step.Name)
		}
	}
	return nil
}

const createLabelersTable = `
	CREATE TABLE IF NOT EXISTS labelers (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		experience_level VARCHAR(20) NOT NULL
			CHECK (experience_level IN ('expert', 'intermediate', 'novice')),
		base_accuracy DOUBLE PRECISION NOT NULL CHECK (base_accuracy BETWEEN 0 AND 1),
		labels_per_hour DOUBLE PRECISION NOT NULL,
		hourly_rate DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`

const createTextSamplesTable = `
	CREATE TABLE IF NOT EXISTS text_samples (
		id BIGSERIAL PRIMARY KEY,
		text TEXT NOT NULL,
		true_sentiment VARCHAR(20) NOT NULL,
		complexity_score INTEGER NOT NULL CHECK (complexity_score BETWEEN 1 AND 10),
		word_count INTEGER,
		source VARCHAR(50),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`

const createLabelsTable = `
	CREATE TABLE IF NOT EXISTS labels (
		id BIGSERIAL PRIMARY KEY,
		sample_id BIGINT NOT NULL REFERENCES text_samples(id) ON DELETE CASCADE,
		labeler_id BIGINT NOT NULL REFERENCES labelers(id) ON DELETE CASCADE,
		predicted_sentiment VARCHAR(20) NOT NULL,
		confidence_score DOUBLE PRECISION NOT NULL CHECK (confidence_score BETWEEN 0 AND 1),
		time_spent_seconds INTEGER NOT NULL,
		is_correct BOOLEAN NOT NULL,
		labeled_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`

const createSimulationRunsTable = `
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id UUID PRIMARY KEY,
		seed BIGINT NOT NULL,
		attempted INTEGER NOT NULL,
		inserted INTEGER NOT NULL,
		failed_batches INTEGER NOT NULL,
		started_at TIMESTAMP WITH TIME ZONE NOT NULL,
		finished_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`

const createIndexes = `
	CREATE INDEX IF NOT EXISTS idx_labels_sample_id ON labels(sample_id);
	CREATE INDEX IF NOT EXISTS idx_labels_labeler_id ON labels(labeler_id);
	CREATE INDEX IF NOT EXISTS idx_text_samples_true_sentiment ON text_samples(true_sentiment)`
