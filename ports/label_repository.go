package ports

import (
	"context"

	"labelops/domain/labeling"
)

// LabelSink accepts generated labels in ordered batches
type LabelSink interface {
	InsertBatch(ctx context.Context, labels []labeling.Label) error
}

// LabelRepository defines the interface for label storage
type LabelRepository interface {
	LabelSink

	// List every persisted label
	List(ctx context.Context) ([]labeling.Label, error)

	// Count persisted labels
	Count(ctx context.Context) (int, error)
}
