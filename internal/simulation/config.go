package simulation

import (
	"labelops/domain/core"
	"labelops/domain/labeling"
)

// Range is a half-open interval [Min, Max)
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Draw returns a uniform value in [Min, Max) using u in [0, 1)
func (r Range) Draw(u float64) float64 {
	return u*(r.Max-r.Min) + r.Min
}

// Config holds every simulation parameter
type Config struct {
	// BatchSize is the number of labels per write
	BatchSize int `json:"batch_size"`

	// MinLabelsPerSample and MaxLabelsPerSample bound how many distinct
	// labelers annotate each sample (inclusive)
	MinLabelsPerSample int `json:"min_labels_per_sample"`
	MaxLabelsPerSample int `json:"max_labels_per_sample"`

	// ComplexityPenalty is the relative accuracy loss at complexity 10
	ComplexityPenalty float64 `json:"complexity_penalty"`

	// BaseTimeRange is the handling time in seconds before speed adjustment
	BaseTimeRange Range `json:"base_time_range"`

	// ErrorConfidenceRange is the confidence interval for incorrect labels
	ErrorConfidenceRange Range `json:"error_confidence_range"`

	// CorrectConfidenceFloors is the lower confidence bound for correct
	// labels per tier; the upper bound is CorrectConfidenceCeiling
	CorrectConfidenceFloors  map[labeling.Tier]float64 `json:"correct_confidence_floors"`
	CorrectConfidenceCeiling float64                   `json:"correct_confidence_ceiling"`

	// SpreadDays is how far back the oldest synthetic timestamp reaches
	SpreadDays int `json:"spread_days"`

	// LabelsPerDay controls how fast timestamps move toward the present.
	// Zero spreads the whole run evenly across SpreadDays.
	LabelsPerDay int `json:"labels_per_day"`

	// HoursPerDrawPosition shifts each labeler by its position in the draw
	HoursPerDrawPosition int `json:"hours_per_draw_position"`

	// MaxJitterMinutes bounds the random minutes subtracted from each timestamp
	MaxJitterMinutes float64 `json:"max_jitter_minutes"`

	Seed int64 `json:"seed"`
}

// DefaultConfig returns the parameters the seeding pipeline runs with
func DefaultConfig() Config {
	return Config{
		BatchSize:            500,
		MinLabelsPerSample:   5,
		MaxLabelsPerSample:   7,
		ComplexityPenalty:    0.15,
		BaseTimeRange:        Range{Min: 30, Max: 180},
		ErrorConfidenceRange: Range{Min: 0.50, Max: 0.75},
		CorrectConfidenceFloors: map[labeling.Tier]float64{
			labeling.TierExpert:       0.85,
			labeling.TierIntermediate: 0.75,
			labeling.TierNovice:       0.65,
		},
		CorrectConfidenceCeiling: 0.95,
		SpreadDays:               7,
		HoursPerDrawPosition:     2,
		MaxJitterMinutes:         120,
		Seed:                     42,
	}
}

// Validate checks the parameters are internally consistent
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return core.NewConfigError("batch_size", "must be positive")
	}
	if c.MinLabelsPerSample <= 0 || c.MaxLabelsPerSample < c.MinLabelsPerSample {
		return core.NewConfigError("labels_per_sample", "must satisfy 0 < min <= max")
	}
	if c.ComplexityPenalty < 0 || c.ComplexityPenalty > 1 {
		return core.NewConfigError("complexity_penalty", "must be within [0, 1]")
	}
	if c.BaseTimeRange.Min <= 0 || c.BaseTimeRange.Max < c.BaseTimeRange.Min {
		return core.NewConfigError("base_time_range", "must be positive and ordered")
	}
	if !validProbabilityRange(c.ErrorConfidenceRange) {
		return core.NewConfigError("error_confidence_range", "must be an ordered range within [0, 1]")
	}
	for _, tier := range labeling.Tiers {
		floor, ok := c.CorrectConfidenceFloors[tier]
		if !ok {
			return core.NewConfigError("correct_confidence_floors", "missing tier "+string(tier))
		}
		if !validProbabilityRange(Range{Min: floor, Max: c.CorrectConfidenceCeiling}) {
			return core.NewConfigError("correct_confidence_floors", "floor for "+string(tier)+" exceeds ceiling")
		}
	}
	if c.SpreadDays < 0 || c.LabelsPerDay < 0 || c.HoursPerDrawPosition < 0 || c.MaxJitterMinutes < 0 {
		return core.NewConfigError("timestamps", "offsets must be non-negative")
	}
	return nil
}

func validProbabilityRange(r Range) bool {
	return r.Min >= 0 && r.Max <= 1 && r.Min <= r.Max
}
