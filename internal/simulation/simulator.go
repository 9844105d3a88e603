package simulation

import (
	"context"
	"math/rand"
	"time"

	"labelops/domain/core"
	"labelops/domain/labeling"
	"labelops/internal"
	"labelops/internal/batch"
	"labelops/ports"
)

// Simulator produces synthetic labels for a fixed set of labelers and samples
type Simulator struct {
	config Config
	rng    ports.RandomSource
	logger *internal.Logger
}

// NewSimulator creates a simulator drawing from rng. A nil rng is replaced
// by one seeded from config.Seed.
func NewSimulator(config Config, rng ports.RandomSource, logger *internal.Logger) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(config.Seed))
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Simulator{config: config, rng: rng, logger: logger.With("simulator")}, nil
}

// Config returns the simulator's parameters
func (s *Simulator) Config() Config {
	return s.config
}

// AssignLabelers draws a uniformly random permutation of labelers and keeps
// a prefix of random length in [MinLabelsPerSample, MaxLabelsPerSample].
// No labeler appears twice.
func (s *Simulator) AssignLabelers(labelers []labeling.Labeler) []labeling.Labeler {
	span := s.config.MaxLabelsPerSample - s.config.MinLabelsPerSample + 1
	n := s.config.MinLabelsPerSample + s.rng.Intn(span)
	if n > len(labelers) {
		n = len(labelers)
	}

	perm := s.rng.Perm(len(labelers))
	assigned := make([]labeling.Labeler, n)
	for i := 0; i < n; i++ {
		assigned[i] = labelers[perm[i]]
	}
	return assigned
}

// LabelSample produces one label for the (sample, labeler) pair.
// drawPosition is the labeler's index in the sample's draw order and
// labelIndex the number of labels generated before this one.
func (s *Simulator) LabelSample(sample labeling.Sample, labeler labeling.Labeler, base time.Time, drawPosition, labelIndex, labelsPerDay int) labeling.Label {
	makeError := ShouldMakeError(s.rng, labeler.BaseAccuracy, sample.ComplexityScore, s.config.ComplexityPenalty)

	predicted := sample.TrueSentiment
	if makeError {
		predicted = WrongSentiment(s.rng, sample.TrueSentiment)
	}

	baseTime := s.config.BaseTimeRange.Draw(s.rng.Float64())

	return labeling.Label{
		SampleID:           sample.ID,
		LabelerID:          labeler.ID,
		PredictedSentiment: predicted,
		ConfidenceScore:    s.config.Confidence(s.rng, !makeError, labeler.ExperienceLevel),
		TimeSpentSeconds:   TimeSpent(baseTime, labeler.LabelsPerHour),
		IsCorrect:          predicted == sample.TrueSentiment,
		LabeledAt:          s.config.Timestamp(s.rng, base, drawPosition, labelIndex, labelsPerDay),
	}
}

// Generate builds the full in-memory label set: every sample gets a fresh
// labeler draw and one label per assigned labeler.
func (s *Simulator) Generate(labelers []labeling.Labeler, samples []labeling.Sample, base time.Time) ([]labeling.Label, error) {
	if len(labelers) == 0 {
		return nil, core.ErrNoLabelers
	}

	labelsPerDay := s.labelsPerDay(len(samples))
	labels := make([]labeling.Label, 0, len(samples)*s.config.MaxLabelsPerSample)

	for i, sample := range samples {
		for j, labeler := range s.AssignLabelers(labelers) {
			labels = append(labels, s.LabelSample(sample, labeler, base, j, len(labels), labelsPerDay))
		}

		if (i+1)%100 == 0 {
			s.logger.Info("processed %d/%d samples (%d labels generated)", i+1, len(samples), len(labels))
		}
	}

	s.logger.Info("generated %d labels for %d samples", len(labels), len(samples))
	return labels, nil
}

// labelsPerDay returns the configured rate, or spreads the expected label
// count over SpreadDays when none is set
func (s *Simulator) labelsPerDay(sampleCount int) int {
	if s.config.LabelsPerDay > 0 {
		return s.config.LabelsPerDay
	}
	if s.config.SpreadDays == 0 {
		return 0
	}
	expected := sampleCount * (s.config.MinLabelsPerSample + s.config.MaxLabelsPerSample) / 2
	perDay := (expected + s.config.SpreadDays - 1) / s.config.SpreadDays
	return max(perDay, 1)
}

// Persist writes labels to sink in sequential batches of BatchSize.
// Failed batches are logged and dropped; the run continues.
func (s *Simulator) Persist(ctx context.Context, sink ports.LabelSink, labels []labeling.Label) batch.Result {
	return batch.Write(ctx, labels, s.config.BatchSize, sink.InsertBatch, s.logger, "labels")
}
