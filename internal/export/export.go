package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"labelops/domain/labeling"
	"labelops/internal/analytics"

	"github.com/xuri/excelize/v2"
)

const (
	SheetLabelers  = "Labelers"
	SheetTiers     = "Accuracy by Level"
	SheetEdgeCases = "Edge Cases"
)

// LabelerHeaders is the column order of the labeler performance table
var LabelerHeaders = []string{
	"labeler", "experience_level", "total_labels", "accuracy_pct",
	"avg_time_seconds", "labels_per_hour", "hourly_rate", "total_cost",
}

func labelerRow(p analytics.LabelerPerformance) []interface{} {
	return []interface{}{
		p.Name, string(p.ExperienceLevel), p.TotalLabels, p.Accuracy,
		p.AvgTimeSeconds, p.LabelsPerHour, p.HourlyRate, p.TotalCost,
	}
}

// WriteCSV writes the labeler performance table as CSV
func WriteCSV(w io.Writer, rows []analytics.LabelerPerformance) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(LabelerHeaders); err != nil {
		return err
	}
	for _, p := range rows {
		record := make([]string, 0, len(LabelerHeaders))
		for _, v := range labelerRow(p) {
			record = append(record, formatValue(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with labeler, tier and edge case sheets
func WriteXLSX(w io.Writer, d *analytics.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet so the workbook opens on the labeler table.
	if err := f.SetSheetName("Sheet1", SheetLabelers); err != nil {
		return err
	}

	labelerData := make([][]interface{}, 0, len(d.Labelers))
	for _, p := range d.Labelers {
		labelerData = append(labelerData, labelerRow(p))
	}
	if err := writeSheet(f, SheetLabelers, toInterfaces(LabelerHeaders), labelerData); err != nil {
		return err
	}

	tierData := make([][]interface{}, 0, len(d.Tiers))
	for _, t := range d.Tiers {
		tierData = append(tierData, []interface{}{string(t.Tier), t.Labelers, t.Labels, t.Accuracy})
	}
	if _, err := f.NewSheet(SheetTiers); err != nil {
		return err
	}
	if err := writeSheet(f, SheetTiers, []interface{}{"experience_level", "labelers", "labels", "accuracy_pct"}, tierData); err != nil {
		return err
	}

	edgeData := make([][]interface{}, 0, len(d.EdgeCases))
	for _, e := range d.EdgeCases {
		row := []interface{}{e.SampleID, string(e.TrueSentiment), e.TotalLabels, e.AgreementRate}
		for _, s := range labeling.Sentiments {
			row = append(row, e.LabelCounts[s])
		}
		edgeData = append(edgeData, append(row, e.Text))
	}
	if _, err := f.NewSheet(SheetEdgeCases); err != nil {
		return err
	}
	edgeHeaders := []interface{}{"sample_id", "true_sentiment", "total_labels", "agreement_pct", "positive", "negative", "neutral", "text"}
	if err := writeSheet(f, SheetEdgeCases, edgeHeaders, edgeData); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func toInterfaces(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
