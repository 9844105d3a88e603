package batch

import (
	"context"

	"labelops/internal"
)

// WriteFunc persists one batch
type WriteFunc[T any] func(ctx context.Context, items []T) error

// Result reports the outcome of a best-effort bulk load
type Result struct {
	Attempted     int   `json:"attempted"`
	Inserted      int   `json:"inserted"`
	Batches       int   `json:"batches"`
	FailedBatches []int `json:"failed_batches,omitempty"` // 1-based batch numbers
}

// Failed returns the number of records dropped with failed batches
func (r Result) Failed() int {
	return r.Attempted - r.Inserted
}

// Write submits items in consecutive batches of size, one at a time,
// awaiting each write before issuing the next. A failed batch is logged
// and skipped; the remaining batches are still attempted.
func Write[T any](ctx context.Context, items []T, size int, write WriteFunc[T], logger *internal.Logger, noun string) Result {
	if size <= 0 {
		size = len(items)
	}
	res := Result{Attempted: len(items)}
	if len(items) == 0 {
		return res
	}

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		res.Batches++
		n := res.Batches

		if err := write(ctx, items[start:end]); err != nil {
			logger.Error("error inserting %s batch %d: %v", noun, n, err)
			res.FailedBatches = append(res.FailedBatches, n)
			continue
		}

		res.Inserted += end - start
		logger.Info("uploaded %s batch %d: %d/%d", noun, n, res.Inserted, res.Attempted)
	}

	return res
}
