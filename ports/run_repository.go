package ports

import (
	"context"

	"labelops/domain/labeling"
)

// RunRepository records simulator invocations
type RunRepository interface {
	Record(ctx context.Context, run *labeling.SimulationRun) error
	Latest(ctx context.Context, limit int) ([]labeling.SimulationRun, error)
}
