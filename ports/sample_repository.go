package ports

import (
	"context"

	"labelops/domain/labeling"
)

// SampleRepository defines the interface for text sample storage
type SampleRepository interface {
	// Insert one batch of samples
	InsertBatch(ctx context.Context, samples []labeling.Sample) error

	// List all samples ordered by id
	List(ctx context.Context) ([]labeling.Sample, error)

	// Count samples, optionally restricted to one true sentiment ("" for all)
	Count(ctx context.Context, sentiment labeling.Sentiment) (int, error)
}
