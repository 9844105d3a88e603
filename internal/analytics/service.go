package analytics

import (
	"context"
	"time"

	"labelops/domain/labeling"
	"labelops/internal/errors"
	"labelops/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultEdgeCaseLimit is how many contentious samples the dashboard lists
const DefaultEdgeCaseLimit = 20

// Snapshot is one consistent read of the three tables
type Snapshot struct {
	Labelers []labeling.Labeler
	Samples  []labeling.Sample
	Labels   []labeling.Label
	LoadedAt time.Time
}

// Dashboard bundles every metric the dashboard shows
type Dashboard struct {
	Overview         Overview             `json:"overview"`
	Labelers         []LabelerPerformance `json:"labelers"`
	WeightedAccuracy float64              `json:"weighted_accuracy"`
	Tiers            []TierAccuracy       `json:"tiers"`
	EdgeCases        []EdgeCase           `json:"edge_cases"`
	Calibration      Calibration          `json:"calibration"`
	GeneratedAt      time.Time            `json:"generated_at"`
}

// Service reads persisted labeling data and computes dashboard metrics
type Service struct {
	labelers ports.LabelerRepository
	samples  ports.SampleRepository
	labels   ports.LabelRepository
}

// NewService creates a new analytics service
func NewService(labelers ports.LabelerRepository, samples ports.SampleRepository, labels ports.LabelRepository) *Service {
	return &Service{labelers: labelers, samples: samples, labels: labels}
}

// Load reads labelers, samples and labels concurrently
func (s *Service) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		labelers, err := s.labelers.List(gctx)
		if err != nil {
			return errors.DatabaseError("failed to load labelers", err)
		}
		snap.Labelers = labelers
		return nil
	})
	g.Go(func() error {
		samples, err := s.samples.List(gctx)
		if err != nil {
			return errors.DatabaseError("failed to load samples", err)
		}
		snap.Samples = samples
		return nil
	})
	g.Go(func() error {
		labels, err := s.labels.List(gctx)
		if err != nil {
			return errors.DatabaseError("failed to load labels", err)
		}
		snap.Labels = labels
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.LoadedAt = time.Now()
	return snap, nil
}

// Dashboard loads a snapshot and computes all metrics from it
func (s *Service) Dashboard(ctx context.Context, edgeCaseLimit int) (*Dashboard, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Build(snap, edgeCaseLimit), nil
}

// Build computes every dashboard metric from a snapshot
func Build(snap *Snapshot, edgeCaseLimit int) *Dashboard {
	perf, weighted := ComputeLabelerPerformance(snap.Labelers, snap.Labels)
	return &Dashboard{
		Overview:         ComputeOverview(snap.Labelers, snap.Samples, snap.Labels),
		Labelers:         perf,
		WeightedAccuracy: weighted,
		Tiers:            ComputeTierAccuracy(snap.Labelers, snap.Labels),
		EdgeCases:        FindEdgeCases(snap.Samples, snap.Labels, edgeCaseLimit),
		Calibration:      ComputeCalibration(snap.Labels),
		GeneratedAt:      snap.LoadedAt,
	}
}
