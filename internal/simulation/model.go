package simulation

import (
	"math"
	"time"

	"labelops/domain/labeling"
	"labelops/ports"
)

// AdjustedAccuracy scales a labeler's accuracy down linearly with sample
// complexity: accuracy * (1 - complexity/10 * penalty).
func AdjustedAccuracy(accuracy float64, complexity int, penalty float64) float64 {
	return accuracy * (1 - (float64(complexity)/10)*penalty)
}

// ShouldMakeError runs one Bernoulli trial: an error occurs when a uniform
// draw exceeds the complexity-adjusted accuracy.
func ShouldMakeError(rng ports.RandomSource, accuracy float64, complexity int, penalty float64) bool {
	return rng.Float64() > AdjustedAccuracy(accuracy, complexity, penalty)
}

// WrongSentiment picks uniformly among the sentiments other than truth
func WrongSentiment(rng ports.RandomSource, truth labeling.Sentiment) labeling.Sentiment {
	wrong := make([]labeling.Sentiment, 0, len(labeling.Sentiments))
	for _, s := range labeling.Sentiments {
		if s != truth {
			wrong = append(wrong, s)
		}
	}
	return wrong[rng.Intn(len(wrong))]
}

// Confidence draws a confidence score rounded to two decimals. Incorrect
// labels draw from the error range; correct ones from the tier floor up
// to the ceiling.
func (c Config) Confidence(rng ports.RandomSource, correct bool, tier labeling.Tier) float64 {
	r := c.ErrorConfidenceRange
	if correct {
		floor, ok := c.CorrectConfidenceFloors[tier]
		if !ok {
			floor = c.CorrectConfidenceFloors[labeling.TierNovice]
		}
		r = Range{Min: floor, Max: c.CorrectConfidenceCeiling}
	}
	return RoundTo2(r.Draw(rng.Float64()))
}

// TimeSpent converts a base handling time into seconds for a labeler with
// the given throughput. A throughput of 10 labels/hour is speed factor 1.
func TimeSpent(base float64, labelsPerHour float64) int {
	speed := labelsPerHour / 10
	if speed <= 0 {
		speed = 1
	}
	seconds := int(math.Floor(base / speed))
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// Timestamp synthesizes a labeled-at time: days back from base shrink as
// labelIndex grows, each draw position shifts a few hours, and a random
// jitter in minutes is subtracted.
func (c Config) Timestamp(rng ports.RandomSource, base time.Time, drawPosition, labelIndex, labelsPerDay int) time.Time {
	daysAgo := c.SpreadDays
	if labelsPerDay > 0 {
		daysAgo -= labelIndex / labelsPerDay
	}
	if daysAgo < 0 {
		daysAgo = 0
	}
	jitter := time.Duration(rng.Float64() * c.MaxJitterMinutes * float64(time.Minute))

	return base.
		AddDate(0, 0, -daysAgo).
		Add(-time.Duration(drawPosition*c.HoursPerDrawPosition) * time.Hour).
		Add(-jitter)
}

// RoundTo2 rounds to two decimal places
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
