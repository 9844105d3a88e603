package seed

import (
	"fmt"
	"io"

	"labelops/domain/labeling"
	"labelops/internal/errors"

	"gopkg.in/yaml.v3"
)

// ProfileFile is the on-disk form of a labeler roster
type ProfileFile struct {
	Labelers []Profile `yaml:"labelers"`
}

// Profile describes one simulated annotator
type Profile struct {
	Name            string  `yaml:"name"`
	ExperienceLevel string  `yaml:"experience_level"`
	BaseAccuracy    float64 `yaml:"base_accuracy"`
	LabelsPerHour   float64 `yaml:"labels_per_hour"`
	HourlyRate      float64 `yaml:"hourly_rate"`
}

// ReadProfiles parses a YAML labeler roster and validates every entry
func ReadProfiles(r io.Reader) ([]labeling.Labeler, error) {
	var file ProfileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, errors.InvalidInput("labeler profile file is empty")
		}
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "failed to parse labeler profiles"))
	}
	if len(file.Labelers) == 0 {
		return nil, errors.InvalidInput("labeler profile file lists no labelers")
	}

	labelers := make([]labeling.Labeler, 0, len(file.Labelers))
	seen := make(map[string]bool, len(file.Labelers))
	for i, p := range file.Labelers {
		if p.Name == "" {
			return nil, errors.ValidationError(fmt.Sprintf("labeler %d: name is required", i+1))
		}
		if seen[p.Name] {
			return nil, errors.ValidationError(fmt.Sprintf("labeler %q listed twice", p.Name))
		}
		seen[p.Name] = true

		tier, err := labeling.ParseTier(p.ExperienceLevel)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("labeler %q: %v", p.Name, err))
		}
		if p.BaseAccuracy < 0 || p.BaseAccuracy > 1 {
			return nil, errors.ValidationError(fmt.Sprintf("labeler %q: base_accuracy must be within [0, 1]", p.Name))
		}
		if p.LabelsPerHour < 0 || p.HourlyRate < 0 {
			return nil, errors.ValidationError(fmt.Sprintf("labeler %q: throughput and rate must not be negative", p.Name))
		}

		labelers = append(labelers, labeling.Labeler{
			Name:            p.Name,
			ExperienceLevel: tier,
			BaseAccuracy:    p.BaseAccuracy,
			LabelsPerHour:   p.LabelsPerHour,
			HourlyRate:      p.HourlyRate,
		})
	}
	return labelers, nil
}
