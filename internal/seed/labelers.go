package seed

import (
	"labelops/domain/labeling"
)

// DefaultLabelers returns the ten simulated annotator profiles: three
// experts, four intermediates and three novices.
func DefaultLabelers() []labeling.Labeler {
	return []labeling.Labeler{
		{Name: "Expert_Alice", ExperienceLevel: labeling.TierExpert, BaseAccuracy: 0.950, LabelsPerHour: 10.0, HourlyRate: 25.00},
		{Name: "Expert_Bob", ExperienceLevel: labeling.TierExpert, BaseAccuracy: 0.935, LabelsPerHour: 9.5, HourlyRate: 24.00},
		{Name: "Expert_Carol", ExperienceLevel: labeling.TierExpert, BaseAccuracy: 0.920, LabelsPerHour: 9.0, HourlyRate: 23.00},

		{Name: "Intermediate_David", ExperienceLevel: labeling.TierIntermediate, BaseAccuracy: 0.880, LabelsPerHour: 8.0, HourlyRate: 18.00},
		{Name: "Intermediate_Emma", ExperienceLevel: labeling.TierIntermediate, BaseAccuracy: 0.860, LabelsPerHour: 7.5, HourlyRate: 17.00},
		{Name: "Intermediate_Frank", ExperienceLevel: labeling.TierIntermediate, BaseAccuracy: 0.840, LabelsPerHour: 7.0, HourlyRate: 16.00},
		{Name: "Intermediate_Grace", ExperienceLevel: labeling.TierIntermediate, BaseAccuracy: 0.800, LabelsPerHour: 6.5, HourlyRate: 15.00},

		{Name: "Novice_Henry", ExperienceLevel: labeling.TierNovice, BaseAccuracy: 0.780, LabelsPerHour: 6.0, HourlyRate: 12.00},
		{Name: "Novice_Iris", ExperienceLevel: labeling.TierNovice, BaseAccuracy: 0.750, LabelsPerHour: 5.5, HourlyRate: 11.00},
		{Name: "Novice_Jack", ExperienceLevel: labeling.TierNovice, BaseAccuracy: 0.720, LabelsPerHour: 5.0, HourlyRate: 10.00},
	}
}

// CountByTier tallies labelers per experience tier
func CountByTier(labelers []labeling.Labeler) map[labeling.Tier]int {
	counts := make(map[labeling.Tier]int, len(labeling.Tiers))
	for _, l := range labelers {
		counts[l.ExperienceLevel]++
	}
	return counts
}
