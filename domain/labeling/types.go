package labeling

import (
	"fmt"
	"strings"
	"time"

	"labelops/domain/core"

	"github.com/google/uuid"
)

// Tier is a labeler's experience level
type Tier string

const (
	TierExpert       Tier = "expert"
	TierIntermediate Tier = "intermediate"
	TierNovice       Tier = "novice"
)

// Tiers lists every tier from most to least experienced
var Tiers = []Tier{TierExpert, TierIntermediate, TierNovice}

// ParseTier parses a tier name, case-insensitively
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tiers {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownTier, s)
}

// Sentiment is a sentiment class a sample can carry or be labeled with
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Sentiments is the universe of predictable sentiments
var Sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

// Labeler is a simulated annotator profile. Read-only once created.
type Labeler struct {
	ID              int64   `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	ExperienceLevel Tier    `json:"experience_level" db:"experience_level"`
	BaseAccuracy    float64 `json:"base_accuracy" db:"base_accuracy"`
	LabelsPerHour   float64 `json:"labels_per_hour" db:"labels_per_hour"`
	HourlyRate      float64 `json:"hourly_rate" db:"hourly_rate"`
}

// Sample is a text unit with a ground-truth sentiment
type Sample struct {
	ID              int64     `json:"id" db:"id"`
	Text            string    `json:"text" db:"text"`
	TrueSentiment   Sentiment `json:"true_sentiment" db:"true_sentiment"`
	ComplexityScore int       `json:"complexity_score" db:"complexity_score"`
	WordCount       int       `json:"word_count" db:"word_count"`
	Source          string    `json:"source" db:"source"`
}

// Label is one annotation produced by one labeler for one sample.
// IsCorrect always equals PredictedSentiment == sample.TrueSentiment.
type Label struct {
	ID                 int64     `json:"id,omitempty" db:"id"`
	SampleID           int64     `json:"sample_id" db:"sample_id"`
	LabelerID          int64     `json:"labeler_id" db:"labeler_id"`
	PredictedSentiment Sentiment `json:"predicted_sentiment" db:"predicted_sentiment"`
	ConfidenceScore    float64   `json:"confidence_score" db:"confidence_score"`
	TimeSpentSeconds   int       `json:"time_spent_seconds" db:"time_spent_seconds"`
	IsCorrect          bool      `json:"is_correct" db:"is_correct"`
	LabeledAt          time.Time `json:"labeled_at" db:"labeled_at"`
}

// SimulationRun records the outcome of one simulator invocation
type SimulationRun struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Seed          int64     `json:"seed" db:"seed"`
	Attempted     int       `json:"attempted" db:"attempted"`
	Inserted      int       `json:"inserted" db:"inserted"`
	FailedBatches int       `json:"failed_batches" db:"failed_batches"`
	StartedAt     time.Time `json:"started_at" db:"started_at"`
	FinishedAt    time.Time `json:"finished_at" db:"finished_at"`
}

// LabelerIndex maps labeler id to profile
type LabelerIndex map[int64]Labeler

// NewLabelerIndex indexes labelers by id
func NewLabelerIndex(labelers []Labeler) LabelerIndex {
	idx := make(LabelerIndex, len(labelers))
	for _, l := range labelers {
		idx[l.ID] = l
	}
	return idx
}

// Get returns the labeler with the given id
func (idx LabelerIndex) Get(id int64) (Labeler, error) {
	l, ok := idx[id]
	if !ok {
		return Labeler{}, fmt.Errorf("%w with id %d", core.ErrLabelerNotFound, id)
	}
	return l, nil
}

// SampleIndex maps sample id to sample
type SampleIndex map[int64]Sample

// NewSampleIndex indexes samples by id
func NewSampleIndex(samples []Sample) SampleIndex {
	idx := make(SampleIndex, len(samples))
	for _, s := range samples {
		idx[s.ID] = s
	}
	return idx
}

// Get returns the sample with the given id
func (idx SampleIndex) Get(id int64) (Sample, error) {
	s, ok := idx[id]
	if !ok {
		return Sample{}, fmt.Errorf("%w with id %d", core.ErrSampleNotFound, id)
	}
	return s, nil
}
