package simulation

import (
	"math"

	"labelops/domain/labeling"

	"gonum.org/v1/gonum/stat/distuv"
)

// LabelerSummary compares one labeler's observed accuracy with what the
// error model predicts for the samples it was given
type LabelerSummary struct {
	LabelerID        int64   `json:"labeler_id"`
	Name             string  `json:"name"`
	Labels           int     `json:"labels"`
	Correct          int     `json:"correct"`
	ObservedAccuracy float64 `json:"observed_accuracy"`
	ExpectedAccuracy float64 `json:"expected_accuracy"`
	IntervalLow      float64 `json:"interval_low"`
	IntervalHigh     float64 `json:"interval_high"`
	WithinInterval   bool    `json:"within_interval"`
}

// Summary aggregates a generated label set
type Summary struct {
	TotalLabels        int              `json:"total_labels"`
	Correct            int              `json:"correct"`
	Incorrect          int              `json:"incorrect"`
	OverallAccuracy    float64          `json:"overall_accuracy"`
	AvgLabelsPerSample float64          `json:"avg_labels_per_sample"`
	Labelers           []LabelerSummary `json:"labelers"`
}

// Summarize computes overall and per-labeler statistics. Per-labeler rows
// follow the order of labelers. confidence is the two-sided level of the
// Wilson interval placed around each observed accuracy.
func Summarize(labelers []labeling.Labeler, samples []labeling.Sample, labels []labeling.Label, penalty, confidence float64) Summary {
	sampleIdx := labeling.NewSampleIndex(samples)
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)

	type acc struct {
		n, correct int
		expected   float64
	}
	per := make(map[int64]*acc, len(labelers))
	for _, l := range labelers {
		per[l.ID] = &acc{}
	}
	labelerIdx := labeling.NewLabelerIndex(labelers)

	var sum Summary
	for _, label := range labels {
		sum.TotalLabels++
		if label.IsCorrect {
			sum.Correct++
		}

		a, ok := per[label.LabelerID]
		if !ok {
			continue
		}
		a.n++
		if label.IsCorrect {
			a.correct++
		}
		if sample, err := sampleIdx.Get(label.SampleID); err == nil {
			a.expected += AdjustedAccuracy(labelerIdx[label.LabelerID].BaseAccuracy, sample.ComplexityScore, penalty)
		}
	}
	sum.Incorrect = sum.TotalLabels - sum.Correct
	if sum.TotalLabels > 0 {
		sum.OverallAccuracy = float64(sum.Correct) / float64(sum.TotalLabels)
	}
	if len(samples) > 0 {
		sum.AvgLabelsPerSample = float64(sum.TotalLabels) / float64(len(samples))
	}

	for _, l := range labelers {
		a := per[l.ID]
		ls := LabelerSummary{LabelerID: l.ID, Name: l.Name, Labels: a.n, Correct: a.correct}
		if a.n > 0 {
			ls.ObservedAccuracy = float64(a.correct) / float64(a.n)
			ls.ExpectedAccuracy = a.expected / float64(a.n)
			ls.IntervalLow, ls.IntervalHigh = WilsonInterval(a.correct, a.n, z)
			ls.WithinInterval = ls.ExpectedAccuracy >= ls.IntervalLow && ls.ExpectedAccuracy <= ls.IntervalHigh
		}
		sum.Labelers = append(sum.Labelers, ls)
	}

	return sum
}

// WilsonInterval returns the Wilson score interval for successes out of n
// trials at normal quantile z
func WilsonInterval(successes, n int, z float64) (low, high float64) {
	if n == 0 {
		return 0, 1
	}
	nf := float64(n)
	p := float64(successes) / nf
	z2 := z * z
	denom := 1 + z2/nf
	center := (p + z2/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}
