package analytics

import (
	"math"
	"sort"

	"labelops/domain/labeling"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Overview holds the dashboard headline counts
type Overview struct {
	TotalLabels     int     `json:"total_labels"`
	TotalSamples    int     `json:"total_samples"`
	TotalLabelers   int     `json:"total_labelers"`
	OverallAccuracy float64 `json:"overall_accuracy"` // percent, one decimal
	TotalCost       float64 `json:"total_cost"`
}

// LabelerPerformance is one row of the labeler performance table
type LabelerPerformance struct {
	LabelerID       int64         `json:"labeler_id"`
	Name            string        `json:"name"`
	ExperienceLevel labeling.Tier `json:"experience_level"`
	TotalLabels     int           `json:"total_labels"`
	Correct         int           `json:"correct"`
	Accuracy        float64       `json:"accuracy"` // percent, one decimal
	AvgTimeSeconds  int           `json:"avg_time_seconds"`
	MedianTimeSecs  float64       `json:"median_time_seconds"`
	LabelsPerHour   float64       `json:"labels_per_hour"`
	HourlyRate      float64       `json:"hourly_rate"`
	TotalCost       float64       `json:"total_cost"`
	CostPerCorrect  float64       `json:"cost_per_correct"`
	MeanConfidence  float64       `json:"mean_confidence"`
}

// TierAccuracy aggregates labels by experience tier
type TierAccuracy struct {
	Tier     labeling.Tier `json:"tier"`
	Labelers int           `json:"labelers"`
	Labels   int           `json:"labels"`
	Accuracy float64       `json:"accuracy"` // percent, one decimal
}

// EdgeCase is a sample the labelers disagreed on
type EdgeCase struct {
	SampleID      int64                      `json:"sample_id"`
	Text          string                     `json:"text"`
	TrueSentiment labeling.Sentiment         `json:"true_sentiment"`
	LabelCounts   map[labeling.Sentiment]int `json:"label_counts"`
	TotalLabels   int                        `json:"total_labels"`
	AgreementRate float64                    `json:"agreement_rate"` // percent, one decimal
}

// Calibration compares confidence on correct and incorrect labels
type Calibration struct {
	CorrectCount            int     `json:"correct_count"`
	IncorrectCount          int     `json:"incorrect_count"`
	CorrectMeanConfidence   float64 `json:"correct_mean_confidence"`
	IncorrectMeanConfidence float64 `json:"incorrect_mean_confidence"`
}

// ComputeOverview counts rows and the share of correct labels
func ComputeOverview(labelers []labeling.Labeler, samples []labeling.Sample, labels []labeling.Label) Overview {
	correct := 0
	perLabeler := make(map[int64]int, len(labelers))
	for _, l := range labels {
		if l.IsCorrect {
			correct++
		}
		perLabeler[l.LabelerID]++
	}

	cost := decimal.Zero
	for _, labeler := range labelers {
		cost = cost.Add(LaborCost(perLabeler[labeler.ID], labeler.LabelsPerHour, labeler.HourlyRate))
	}

	return Overview{
		TotalLabels:     len(labels),
		TotalSamples:    len(samples),
		TotalLabelers:   len(labelers),
		OverallAccuracy: percent(correct, len(labels)),
		TotalCost:       dollars(cost),
	}
}

// ComputeLabelerPerformance builds one row per labeler, most accurate
// profile first, plus the label-weighted accuracy across all rows.
// Cost is hours worked at the labeler's throughput times its hourly rate.
func ComputeLabelerPerformance(labelers []labeling.Labeler, labels []labeling.Label) ([]LabelerPerformance, float64) {
	byLabeler := make(map[int64][]labeling.Label, len(labelers))
	for _, l := range labels {
		byLabeler[l.LabelerID] = append(byLabeler[l.LabelerID], l)
	}

	ordered := append([]labeling.Labeler(nil), labelers...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BaseAccuracy > ordered[j].BaseAccuracy
	})

	rows := make([]LabelerPerformance, 0, len(ordered))
	totalLabels, totalCorrect := 0, 0
	for _, labeler := range ordered {
		own := byLabeler[labeler.ID]
		row := LabelerPerformance{
			LabelerID:       labeler.ID,
			Name:            labeler.Name,
			ExperienceLevel: labeler.ExperienceLevel,
			TotalLabels:     len(own),
			LabelsPerHour:   labeler.LabelsPerHour,
			HourlyRate:      labeler.HourlyRate,
		}

		times := make([]float64, 0, len(own))
		confidences := make([]float64, 0, len(own))
		for _, l := range own {
			if l.IsCorrect {
				row.Correct++
			}
			times = append(times, float64(l.TimeSpentSeconds))
			confidences = append(confidences, l.ConfidenceScore)
		}

		row.Accuracy = percent(row.Correct, len(own))
		if avg, err := stats.Mean(times); err == nil {
			row.AvgTimeSeconds = int(math.Round(avg))
		}
		if med, err := stats.Median(times); err == nil {
			row.MedianTimeSecs = med
		}
		if mc, err := stats.Mean(confidences); err == nil {
			row.MeanConfidence = round(mc, 2)
		}
		cost := LaborCost(len(own), labeler.LabelsPerHour, labeler.HourlyRate)
		row.TotalCost = dollars(cost)
		row.CostPerCorrect = dollars(CostPer(cost, row.Correct))

		totalLabels += len(own)
		totalCorrect += row.Correct
		rows = append(rows, row)
	}

	return rows, percent(totalCorrect, totalLabels)
}

// ComputeTierAccuracy aggregates accuracy per tier, expert first
func ComputeTierAccuracy(labelers []labeling.Labeler, labels []labeling.Label) []TierAccuracy {
	index := labeling.NewLabelerIndex(labelers)
	type acc struct{ labelers, labels, correct int }
	per := make(map[labeling.Tier]*acc, len(labeling.Tiers))
	for _, tier := range labeling.Tiers {
		per[tier] = &acc{}
	}
	for _, l := range labelers {
		if a, ok := per[l.ExperienceLevel]; ok {
			a.labelers++
		}
	}
	for _, label := range labels {
		labeler, err := index.Get(label.LabelerID)
		if err != nil {
			continue
		}
		a, ok := per[labeler.ExperienceLevel]
		if !ok {
			continue
		}
		a.labels++
		if label.IsCorrect {
			a.correct++
		}
	}

	out := make([]TierAccuracy, 0, len(labeling.Tiers))
	for _, tier := range labeling.Tiers {
		a := per[tier]
		out = append(out, TierAccuracy{
			Tier:     tier,
			Labelers: a.labelers,
			Labels:   a.labels,
			Accuracy: percent(a.correct, a.labels),
		})
	}
	return out
}

// FindEdgeCases returns samples with at least three labels and at least two
// distinct predictions, least agreement first, at most limit of them.
// Agreement is the share of labels matching the most common prediction.
func FindEdgeCases(samples []labeling.Sample, labels []labeling.Label, limit int) []EdgeCase {
	index := labeling.NewSampleIndex(samples)
	groups := make(map[int64]map[labeling.Sentiment]int)
	totals := make(map[int64]int)
	for _, l := range labels {
		if groups[l.SampleID] == nil {
			groups[l.SampleID] = make(map[labeling.Sentiment]int)
		}
		groups[l.SampleID][l.PredictedSentiment]++
		totals[l.SampleID]++
	}

	var cases []EdgeCase
	for sampleID, counts := range groups {
		total := totals[sampleID]
		if len(counts) < 2 || total < 3 {
			continue
		}
		maxCount := 0
		for _, c := range counts {
			maxCount = max(maxCount, c)
		}
		sample, _ := index.Get(sampleID)
		cases = append(cases, EdgeCase{
			SampleID:      sampleID,
			Text:          sample.Text,
			TrueSentiment: sample.TrueSentiment,
			LabelCounts:   counts,
			TotalLabels:   total,
			AgreementRate: percent(maxCount, total),
		})
	}

	sort.Slice(cases, func(i, j int) bool {
		if cases[i].AgreementRate != cases[j].AgreementRate {
			return cases[i].AgreementRate < cases[j].AgreementRate
		}
		return cases[i].SampleID < cases[j].SampleID
	})
	if limit > 0 && len(cases) > limit {
		cases = cases[:limit]
	}
	return cases
}

// ComputeCalibration averages confidence separately for correct and incorrect labels
func ComputeCalibration(labels []labeling.Label) Calibration {
	var correct, incorrect []float64
	for _, l := range labels {
		if l.IsCorrect {
			correct = append(correct, l.ConfidenceScore)
		} else {
			incorrect = append(incorrect, l.ConfidenceScore)
		}
	}

	c := Calibration{CorrectCount: len(correct), IncorrectCount: len(incorrect)}
	if m, err := stats.Mean(correct); err == nil {
		c.CorrectMeanConfidence = round(m, 3)
	}
	if m, err := stats.Mean(incorrect); err == nil {
		c.IncorrectMeanConfidence = round(m, 3)
	}
	return c
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round(float64(part)/float64(whole)*100, 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
