package analytics

import (
	"strings"
	"testing"
	"time"

	"labelops/domain/labeling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureLabelers() []labeling.Labeler {
	return []labeling.Labeler{
		{ID: 2, Name: "Novice_Jack", ExperienceLevel: labeling.TierNovice, BaseAccuracy: 0.72, LabelsPerHour: 5, HourlyRate: 10},
		{ID: 1, Name: "Expert_Alice", ExperienceLevel: labeling.TierExpert, BaseAccuracy: 0.95, LabelsPerHour: 10, HourlyRate: 25},
		{ID: 3, Name: "Idle_Ivy", ExperienceLevel: labeling.TierIntermediate, BaseAccuracy: 0.80, LabelsPerHour: 0, HourlyRate: 15},
	}
}

func fixtureSamples() []labeling.Sample {
	return []labeling.Sample{
		{ID: 10, Text: "A clear favourite", TrueSentiment: labeling.SentimentPositive, ComplexityScore: 1},
		{ID: 11, Text: "Hard to say", TrueSentiment: labeling.SentimentNegative, ComplexityScore: 8},
		{ID: 12, Text: "Two labels only", TrueSentiment: labeling.SentimentNegative, ComplexityScore: 2},
	}
}

func label(sampleID, labelerID int64, predicted, truth labeling.Sentiment, confidence float64, secs int) labeling.Label {
	return labeling.Label{
		SampleID:           sampleID,
		LabelerID:          labelerID,
		PredictedSentiment: predicted,
		ConfidenceScore:    confidence,
		TimeSpentSeconds:   secs,
		IsCorrect:          predicted == truth,
	}
}

func fixtureLabels() []labeling.Label {
	pos, neg, neu := labeling.SentimentPositive, labeling.SentimentNegative, labeling.SentimentNeutral
	return []labeling.Label{
		// sample 10: unanimous
		label(10, 1, pos, pos, 0.90, 60),
		label(10, 2, pos, pos, 0.70, 120),
		label(10, 1, pos, pos, 0.88, 80),
		// sample 11: 2 negative, 1 positive, 1 neutral
		label(11, 1, neg, neg, 0.86, 100),
		label(11, 2, pos, neg, 0.55, 200),
		label(11, 2, neu, neg, 0.60, 180),
		label(11, 1, neg, neg, 0.91, 90),
		// sample 12: disagreement but only two labels
		label(12, 1, neg, neg, 0.89, 70),
		label(12, 2, pos, neg, 0.52, 150),
	}
}

func TestComputeOverview(t *testing.T) {
	o := ComputeOverview(fixtureLabelers(), fixtureSamples(), fixtureLabels())
	assert.Equal(t, 9, o.TotalLabels)
	assert.Equal(t, 3, o.TotalSamples)
	assert.Equal(t, 3, o.TotalLabelers)
	assert.Equal(t, 66.7, o.OverallAccuracy)
	assert.Equal(t, 20.5, o.TotalCost) // alice 12.5 + jack 8

	empty := ComputeOverview(nil, nil, nil)
	assert.Equal(t, 0.0, empty.OverallAccuracy)
}

func TestComputeLabelerPerformance(t *testing.T) {
	rows, weighted := ComputeLabelerPerformance(fixtureLabelers(), fixtureLabels())
	require.Len(t, rows, 3)

	alice, ivy, jack := rows[0], rows[1], rows[2]
	assert.Equal(t, "Expert_Alice", alice.Name, "ordered by base accuracy")
	assert.Equal(t, "Idle_Ivy", ivy.Name)
	assert.Equal(t, "Novice_Jack", jack.Name)

	assert.Equal(t, 5, alice.TotalLabels)
	assert.Equal(t, 100.0, alice.Accuracy)
	assert.Equal(t, 80, alice.AvgTimeSeconds)
	assert.Equal(t, 80.0, alice.MedianTimeSecs)
	assert.Equal(t, 12.5, alice.TotalCost) // 5 labels / 10 per hour * $25
	assert.Equal(t, 2.5, alice.CostPerCorrect)

	assert.Equal(t, 4, jack.TotalLabels)
	assert.Equal(t, 25.0, jack.Accuracy)
	assert.Equal(t, 163, jack.AvgTimeSeconds) // (120+200+180+150)/4 = 162.5
	assert.Equal(t, 8.0, jack.TotalCost)      // 4 / 5 * $10

	assert.Equal(t, 0, ivy.TotalLabels)
	assert.Equal(t, 0.0, ivy.Accuracy)
	assert.Equal(t, 0.0, ivy.TotalCost, "zero throughput costs nothing")

	assert.Equal(t, 66.7, weighted)
}

func TestComputeTierAccuracy(t *testing.T) {
	tiers := ComputeTierAccuracy(fixtureLabelers(), fixtureLabels())
	require.Len(t, tiers, 3)

	assert.Equal(t, labeling.TierExpert, tiers[0].Tier)
	assert.Equal(t, 1, tiers[0].Labelers)
	assert.Equal(t, 5, tiers[0].Labels)
	assert.Equal(t, 100.0, tiers[0].Accuracy)

	assert.Equal(t, labeling.TierIntermediate, tiers[1].Tier)
	assert.Equal(t, 0, tiers[1].Labels)

	assert.Equal(t, labeling.TierNovice, tiers[2].Tier)
	assert.Equal(t, 25.0, tiers[2].Accuracy)
}

func TestFindEdgeCases(t *testing.T) {
	cases := FindEdgeCases(fixtureSamples(), fixtureLabels(), 20)
	require.Len(t, cases, 1, "unanimous and two-label samples are excluded")

	c := cases[0]
	assert.Equal(t, int64(11), c.SampleID)
	assert.Equal(t, "Hard to say", c.Text)
	assert.Equal(t, 4, c.TotalLabels)
	assert.Equal(t, 50.0, c.AgreementRate)
	assert.Equal(t, map[labeling.Sentiment]int{
		labeling.SentimentNegative: 2,
		labeling.SentimentPositive: 1,
		labeling.SentimentNeutral:  1,
	}, c.LabelCounts)
}

func TestFindEdgeCases_OrderAndLimit(t *testing.T) {
	pos, neg := labeling.SentimentPositive, labeling.SentimentNegative
	var labels []labeling.Label
	// sample 1: 2/3 agreement, sample 2: 3/4, sample 3: 2/4
	labels = append(labels, label(1, 1, pos, pos, 0.9, 1), label(1, 2, pos, pos, 0.9, 1), label(1, 3, neg, pos, 0.6, 1))
	labels = append(labels, label(2, 1, pos, pos, 0.9, 1), label(2, 2, pos, pos, 0.9, 1), label(2, 3, pos, pos, 0.9, 1), label(2, 4, neg, pos, 0.6, 1))
	labels = append(labels, label(3, 1, pos, pos, 0.9, 1), label(3, 2, pos, pos, 0.9, 1), label(3, 3, neg, pos, 0.6, 1), label(3, 4, neg, pos, 0.6, 1))

	cases := FindEdgeCases(nil, labels, 0)
	require.Len(t, cases, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{cases[0].SampleID, cases[1].SampleID, cases[2].SampleID})
	assert.Equal(t, []float64{50, 66.7, 75}, []float64{cases[0].AgreementRate, cases[1].AgreementRate, cases[2].AgreementRate})

	limited := FindEdgeCases(nil, labels, 2)
	assert.Len(t, limited, 2)
}

func TestComputeCalibration(t *testing.T) {
	c := ComputeCalibration(fixtureLabels())
	assert.Equal(t, 6, c.CorrectCount)
	assert.Equal(t, 3, c.IncorrectCount)
	assert.InDelta(t, (0.90+0.70+0.88+0.86+0.91+0.89)/6, c.CorrectMeanConfidence, 1e-3)
	assert.InDelta(t, (0.55+0.60+0.52)/3, c.IncorrectMeanConfidence, 1e-3)
	assert.Greater(t, c.CorrectMeanConfidence, c.IncorrectMeanConfidence)
}

func TestRenderMarkdown(t *testing.T) {
	snap := &Snapshot{
		Labelers: fixtureLabelers(),
		Samples:  fixtureSamples(),
		Labels:   fixtureLabels(),
		LoadedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	md := RenderMarkdown(Build(snap, DefaultEdgeCaseLimit))

	assert.True(t, strings.HasPrefix(md, "# LabelOps Report"))
	assert.Contains(t, md, "- Overall accuracy: 66.7%")
	assert.Contains(t, md, "| Expert_Alice | expert | 5 | 100.0% | 80s | 10.0 | $25.00 | $12.50 |")
	assert.Contains(t, md, "| **Total** | | 9 | 66.7% |")
	assert.Contains(t, md, "| 11 | negative | 50.0% | positive: 1, negative: 2, neutral: 1 | Hard to say |")
}

func TestRenderMarkdown_NoEdgeCases(t *testing.T) {
	md := RenderMarkdown(Build(&Snapshot{}, 5))
	assert.Contains(t, md, "No samples with labeler disagreement.")
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("a", 150)
	assert.Equal(t, strings.Repeat("a", 100)+"…", preview(long))
	assert.Equal(t, "a \\| b", preview("a |\n b"))
}
