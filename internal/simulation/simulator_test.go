package simulation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"testing"
	"time"

	"labelops/domain/core"
	"labelops/domain/labeling"
	"labelops/internal"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixedSource returns the same draw every time and the identity permutation
type fixedSource struct {
	f float64
	i int
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) Intn(n int) int   { return s.i % n }
func (s fixedSource) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

type MockLabelSink struct {
	mock.Mock
}

func (m *MockLabelSink) InsertBatch(ctx context.Context, labels []labeling.Label) error {
	args := m.Called(ctx, labels)
	return args.Error(0)
}

func quietLogger() *internal.Logger {
	return internal.NewLogger(io.Discard, internal.LogLevelError)
}

func testLabelers() []labeling.Labeler {
	return []labeling.Labeler{
		{ID: 1, Name: "Expert_Alice", ExperienceLevel: labeling.TierExpert, BaseAccuracy: 0.95, LabelsPerHour: 10, HourlyRate: 25},
		{ID: 2, Name: "Expert_Bob", ExperienceLevel: labeling.TierExpert, BaseAccuracy: 0.935, LabelsPerHour: 9.5, HourlyRate: 24},
		{ID: 3, Name: "Expert_Carol", ExperienceLevel: labeling.TierExpert, BaseAccuracy: 0.92, LabelsPerHour: 9, HourlyRate: 23},
		{ID: 4, Name: "Intermediate_David", ExperienceLevel: labeling.TierIntermediate, BaseAccuracy: 0.88, LabelsPerHour: 8, HourlyRate: 18},
		{ID: 5, Name: "Intermediate_Emma", ExperienceLevel: labeling.TierIntermediate, BaseAccuracy: 0.86, LabelsPerHour: 7.5, HourlyRate: 17},
		{ID: 6, Name: "Intermediate_Frank", ExperienceLevel: labeling.TierIntermediate, BaseAccuracy: 0.84, LabelsPerHour: 7, HourlyRate: 16},
		{ID: 7, Name: "Intermediate_Grace", ExperienceLevel: labeling.TierIntermediate, BaseAccuracy: 0.80, LabelsPerHour: 6.5, HourlyRate: 15},
		{ID: 8, Name: "Novice_Henry", ExperienceLevel: labeling.TierNovice, BaseAccuracy: 0.78, LabelsPerHour: 6, HourlyRate: 12},
		{ID: 9, Name: "Novice_Iris", ExperienceLevel: labeling.TierNovice, BaseAccuracy: 0.75, LabelsPerHour: 5.5, HourlyRate: 11},
		{ID: 10, Name: "Novice_Jack", ExperienceLevel: labeling.TierNovice, BaseAccuracy: 0.72, LabelsPerHour: 5, HourlyRate: 10},
	}
}

func testSamples(n int, seed int64) []labeling.Sample {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]labeling.Sample, n)
	for i := range samples {
		truth := labeling.SentimentPositive
		if rng.Intn(2) == 0 {
			truth = labeling.SentimentNegative
		}
		samples[i] = labeling.Sample{
			ID:              int64(i + 1),
			Text:            fmt.Sprintf("review %d", i+1),
			TrueSentiment:   truth,
			ComplexityScore: 1 + rng.Intn(10),
		}
	}
	return samples
}

func newTestSimulator(t *testing.T, seed int64) *Simulator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	sim, err := NewSimulator(cfg, rand.New(rand.NewSource(seed)), quietLogger())
	require.NoError(t, err)
	return sim
}

func TestAssignLabelers_BoundsAndNoDuplicates(t *testing.T) {
	sim := newTestSimulator(t, 7)
	labelers := testLabelers()
	sizes := map[int]int{}

	for trial := 0; trial < 2000; trial++ {
		assigned := sim.AssignLabelers(labelers)
		require.GreaterOrEqual(t, len(assigned), 5)
		require.LessOrEqual(t, len(assigned), 7)
		sizes[len(assigned)]++

		seen := map[int64]bool{}
		for _, l := range assigned {
			require.False(t, seen[l.ID], "labeler %d assigned twice", l.ID)
			seen[l.ID] = true
		}
	}

	for size := 5; size <= 7; size++ {
		assert.Greater(t, sizes[size], 0, "size %d never drawn", size)
	}
}

func TestAssignLabelers_FewerLabelersThanMinimum(t *testing.T) {
	sim := newTestSimulator(t, 1)
	assigned := sim.AssignLabelers(testLabelers()[:3])
	assert.Len(t, assigned, 3)
}

func TestGenerate_LabelInvariants(t *testing.T) {
	sim := newTestSimulator(t, 42)
	labelers := testLabelers()
	samples := testSamples(500, 3)
	samplesByID := labeling.NewSampleIndex(samples)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	labels, err := sim.Generate(labelers, samples, base)
	require.NoError(t, err)
	require.NotEmpty(t, labels)

	perSample := map[int64]map[int64]bool{}
	for _, label := range labels {
		sample, err := samplesByID.Get(label.SampleID)
		require.NoError(t, err)

		assert.Equal(t, label.PredictedSentiment == sample.TrueSentiment, label.IsCorrect)

		assert.GreaterOrEqual(t, label.ConfidenceScore, 0.50)
		assert.LessOrEqual(t, label.ConfidenceScore, 0.95)
		assert.InDelta(t, math.Round(label.ConfidenceScore*100), label.ConfidenceScore*100, 1e-9,
			"confidence %v is not two-decimal", label.ConfidenceScore)

		assert.Positive(t, label.TimeSpentSeconds)

		assert.False(t, label.LabeledAt.After(base))
		assert.True(t, label.LabeledAt.After(base.AddDate(0, 0, -8)))

		if perSample[label.SampleID] == nil {
			perSample[label.SampleID] = map[int64]bool{}
		}
		assert.False(t, perSample[label.SampleID][label.LabelerID], "duplicate labeler on sample")
		perSample[label.SampleID][label.LabelerID] = true
	}

	assert.Len(t, perSample, len(samples))
	for id, assigned := range perSample {
		assert.True(t, len(assigned) >= 5 && len(assigned) <= 7, "sample %d has %d labelers", id, len(assigned))
	}
}

func TestGenerate_IncorrectLabelsHaveLowConfidence(t *testing.T) {
	sim := newTestSimulator(t, 11)
	labels, err := sim.Generate(testLabelers(), testSamples(300, 5), time.Now())
	require.NoError(t, err)

	for _, label := range labels {
		if !label.IsCorrect {
			assert.LessOrEqual(t, label.ConfidenceScore, 0.75)
		} else {
			assert.GreaterOrEqual(t, label.ConfidenceScore, 0.65)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	base := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	samples := testSamples(50, 9)

	first, err := newTestSimulator(t, 12345).Generate(testLabelers(), samples, base)
	require.NoError(t, err)
	second, err := newTestSimulator(t, 12345).Generate(testLabelers(), samples, base)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed produced different labels (-first +second):\n%s", diff)
	}

	third, err := newTestSimulator(t, 54321).Generate(testLabelers(), samples, base)
	require.NoError(t, err)
	assert.NotEmpty(t, cmp.Diff(first, third), "different seeds should diverge")
}

func TestGenerate_NoLabelers(t *testing.T) {
	sim := newTestSimulator(t, 1)
	_, err := sim.Generate(nil, testSamples(3, 1), time.Now())
	assert.ErrorIs(t, err, core.ErrNoLabelers)
}

func TestShouldMakeError_TracksFormula(t *testing.T) {
	tests := []struct {
		name       string
		accuracy   float64
		complexity int
		want       float64
	}{
		{"accuracy 0.90 complexity 5", 0.90, 5, 0.8325},
		{"accuracy 0.95 complexity 1", 0.95, 1, 0.93575},
		{"accuracy 0.72 complexity 10", 0.72, 10, 0.612},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AdjustedAccuracy(tt.accuracy, tt.complexity, 0.15), 1e-9)

			rng := rand.New(rand.NewSource(2024))
			const trials = 10000
			correct := 0
			for i := 0; i < trials; i++ {
				if !ShouldMakeError(rng, tt.accuracy, tt.complexity, 0.15) {
					correct++
				}
			}
			assert.InDelta(t, tt.want, float64(correct)/trials, 0.02)
		})
	}
}

func TestShouldMakeError_Boundary(t *testing.T) {
	// adjusted accuracy at complexity 0 is the base accuracy; a draw equal to it is not an error
	assert.False(t, ShouldMakeError(fixedSource{f: 0.9}, 0.9, 0, 0.15))
	assert.True(t, ShouldMakeError(fixedSource{f: 0.91}, 0.9, 0, 0.15))
}

func TestWrongSentiment_ExcludesTruth(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	seen := map[labeling.Sentiment]int{}

	for i := 0; i < 1000; i++ {
		got := WrongSentiment(rng, labeling.SentimentPositive)
		require.NotEqual(t, labeling.SentimentPositive, got)
		seen[got]++
	}

	assert.Len(t, seen, 2)
	assert.Greater(t, seen[labeling.SentimentNegative], 400)
	assert.Greater(t, seen[labeling.SentimentNeutral], 400)
}

func TestConfidence_Bounds(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		draw    float64
		correct bool
		tier    labeling.Tier
		want    float64
	}{
		{"incorrect low", 0, false, labeling.TierExpert, 0.50},
		{"incorrect high", 0.999, false, labeling.TierNovice, 0.75},
		{"expert floor", 0, true, labeling.TierExpert, 0.85},
		{"intermediate floor", 0, true, labeling.TierIntermediate, 0.75},
		{"novice floor", 0, true, labeling.TierNovice, 0.65},
		{"novice midpoint", 0.5, true, labeling.TierNovice, 0.80},
		{"ceiling", 0.999, true, labeling.TierExpert, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.Confidence(fixedSource{f: tt.draw}, tt.correct, tt.tier)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTimeSpent(t *testing.T) {
	assert.Equal(t, 120, TimeSpent(120, 10))
	assert.Equal(t, 240, TimeSpent(120, 5))
	assert.Equal(t, 60, TimeSpent(120, 20))
	assert.Equal(t, 133, TimeSpent(120, 9))
	assert.Equal(t, 120, TimeSpent(120, 0), "zero throughput falls back to speed factor 1")
	assert.Equal(t, 1, TimeSpent(0.5, 10))

	// faster labelers take less time for the same base draw
	prev := math.MaxInt
	for _, lph := range []float64{5, 6.5, 8, 9.5, 10} {
		got := TimeSpent(150, lph)
		assert.Less(t, got, prev)
		prev = got
	}
}

func TestTimestamp(t *testing.T) {
	cfg := DefaultConfig()
	base := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)

	got := cfg.Timestamp(fixedSource{f: 0.5}, base, 2, 0, 100)
	want := base.AddDate(0, 0, -7).Add(-4 * time.Hour).Add(-60 * time.Minute)
	assert.Equal(t, want, got)

	// days back shrink as more labels are generated
	later := cfg.Timestamp(fixedSource{f: 0.5}, base, 2, 350, 100)
	assert.Equal(t, want.AddDate(0, 0, 3), later)

	// never past the base time
	end := cfg.Timestamp(fixedSource{f: 0}, base, 0, 5000, 100)
	assert.Equal(t, base, end)
}

func TestPersist_FailedBatchIsSkipped(t *testing.T) {
	sim := newTestSimulator(t, 5)
	labels := make([]labeling.Label, 1500)
	for i := range labels {
		labels[i] = labeling.Label{SampleID: int64(i + 1), LabelerID: 1}
	}

	sink := new(MockLabelSink)
	sink.On("InsertBatch", mock.Anything, labels[0:500]).Return(nil).Once()
	sink.On("InsertBatch", mock.Anything, labels[500:1000]).Return(errors.New("connection reset")).Once()
	sink.On("InsertBatch", mock.Anything, labels[1000:1500]).Return(nil).Once()

	res := sim.Persist(context.Background(), sink, labels)

	sink.AssertExpectations(t)
	assert.Equal(t, 1500, res.Attempted)
	assert.Equal(t, 1000, res.Inserted)
	assert.Equal(t, []int{2}, res.FailedBatches)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero batch", func(c *Config) { c.BatchSize = 0 }},
		{"inverted bounds", func(c *Config) { c.MinLabelsPerSample = 8 }},
		{"penalty above one", func(c *Config) { c.ComplexityPenalty = 1.5 }},
		{"empty time range", func(c *Config) { c.BaseTimeRange = Range{} }},
		{"floor above ceiling", func(c *Config) { c.CorrectConfidenceFloors[labeling.TierExpert] = 0.99 }},
		{"missing tier", func(c *Config) { delete(c.CorrectConfidenceFloors, labeling.TierNovice) }},
	}

	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, core.ErrInvalidConfig)
		})
	}
}
