package ports

import (
	"context"

	"labelops/domain/labeling"
)

// LabelerRepository defines the interface for labeler profile storage
type LabelerRepository interface {
	// Create all labelers in a single insert, returning them with ids assigned
	CreateAll(ctx context.Context, labelers []labeling.Labeler) ([]labeling.Labeler, error)

	// List all labelers ordered by base accuracy descending
	List(ctx context.Context) ([]labeling.Labeler, error)

	// Count labelers
	Count(ctx context.Context) (int, error)
}
