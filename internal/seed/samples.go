package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"labelops/domain/labeling"
	"labelops/internal/errors"
)

// SourceIMDB tags samples loaded from the IMDB review dataset
const SourceIMDB = "imdb"

var (
	textHeaders      = []string{"review", "Review", "text"}
	sentimentHeaders = []string{"sentiment", "Sentiment"}
)

// ComplexityScore derives a 1-10 difficulty proxy from word count: one
// point per 50 words, clamped to [1, 10].
func ComplexityScore(wordCount int) int {
	return min(10, max(1, wordCount/50))
}

// ReadSamples parses a review CSV with a header row and returns at most
// limit samples (all when limit <= 0). Rows with empty text are dropped
// after the limit is applied. Any sentiment other than "positive" is
// stored as negative.
func ReadSamples(r io.Reader, limit int) ([]labeling.Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}
	textCol := findColumn(header, textHeaders)
	sentimentCol := findColumn(header, sentimentHeaders)
	if textCol < 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("CSV has no review column (want one of %v)", textHeaders))
	}

	var samples []labeling.Sample
	for rows := 0; limit <= 0 || rows < limit; rows++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CSV row %d", rows+2)
		}
		if isBlank(record) {
			rows--
			continue
		}

		text := strings.TrimSpace(field(record, textCol))
		if text == "" {
			continue
		}

		sentiment := labeling.SentimentNegative
		if strings.EqualFold(strings.TrimSpace(field(record, sentimentCol)), string(labeling.SentimentPositive)) {
			sentiment = labeling.SentimentPositive
		}

		words := len(strings.Fields(text))
		samples = append(samples, labeling.Sample{
			Text:            text,
			TrueSentiment:   sentiment,
			ComplexityScore: ComplexityScore(words),
			WordCount:       words,
			Source:          SourceIMDB,
		})
	}

	return samples, nil
}

func findColumn(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == name {
				return i
			}
		}
	}
	return -1
}

func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return record[col]
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
