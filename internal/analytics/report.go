package analytics

import (
	"fmt"
	"strings"

	"labelops/domain/labeling"
)

const textPreviewLen = 100

// RenderMarkdown writes the dashboard as a markdown operations report
func RenderMarkdown(d *Dashboard) string {
	var b strings.Builder

	b.WriteString("# LabelOps Report\n\n")
	if !d.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "_Generated %s_\n\n", d.GeneratedAt.Format("2006-01-02 15:04 MST"))
	}

	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- Total labels: %d\n", d.Overview.TotalLabels)
	fmt.Fprintf(&b, "- Text samples: %d\n", d.Overview.TotalSamples)
	fmt.Fprintf(&b, "- Active labelers: %d\n", d.Overview.TotalLabelers)
	fmt.Fprintf(&b, "- Overall accuracy: %.1f%%\n", d.Overview.OverallAccuracy)
	fmt.Fprintf(&b, "- Labor cost: $%.2f\n\n", d.Overview.TotalCost)

	b.WriteString("## Labeler Performance\n\n")
	b.WriteString("| Labeler | Level | Labels | Accuracy | Avg Time | Labels/hr | Rate | Total Cost |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|\n")
	total := 0
	for _, p := range d.Labelers {
		fmt.Fprintf(&b, "| %s | %s | %d | %.1f%% | %ds | %.1f | $%.2f | $%.2f |\n",
			p.Name, p.ExperienceLevel, p.TotalLabels, p.Accuracy, p.AvgTimeSeconds,
			p.LabelsPerHour, p.HourlyRate, p.TotalCost)
		total += p.TotalLabels
	}
	fmt.Fprintf(&b, "| **Total** | | %d | %.1f%% | | | | |\n\n", total, d.WeightedAccuracy)

	b.WriteString("## Accuracy by Level\n\n")
	b.WriteString("| Level | Labelers | Labels | Accuracy |\n|---|---:|---:|---:|\n")
	for _, t := range d.Tiers {
		fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% |\n", t.Tier, t.Labelers, t.Labels, t.Accuracy)
	}
	b.WriteString("\n")

	b.WriteString("## Confidence Calibration\n\n")
	fmt.Fprintf(&b, "- Correct labels: %d, mean confidence %.3f\n", d.Calibration.CorrectCount, d.Calibration.CorrectMeanConfidence)
	fmt.Fprintf(&b, "- Incorrect labels: %d, mean confidence %.3f\n\n", d.Calibration.IncorrectCount, d.Calibration.IncorrectMeanConfidence)

	b.WriteString("## Edge Cases\n\n")
	if len(d.EdgeCases) == 0 {
		b.WriteString("No samples with labeler disagreement.\n")
		return b.String()
	}
	b.WriteString("| Sample | Truth | Agreement | Labels | Preview |\n|---:|---|---:|---|---|\n")
	for _, e := range d.EdgeCases {
		fmt.Fprintf(&b, "| %d | %s | %.1f%% | %s | %s |\n",
			e.SampleID, e.TrueSentiment, e.AgreementRate, formatCounts(e), preview(e.Text))
	}
	return b.String()
}

func formatCounts(e EdgeCase) string {
	parts := make([]string, 0, len(e.LabelCounts))
	for _, s := range labeling.Sentiments {
		if n, ok := e.LabelCounts[s]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", s, n))
		}
	}
	return strings.Join(parts, ", ")
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = strings.ReplaceAll(text, "|", "\\|")
	r := []rune(text)
	if len(r) > textPreviewLen {
		return string(r[:textPreviewLen]) + "…"
	}
	return text
}
