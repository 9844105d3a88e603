package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrLabelerNotFound = fmt.Errorf("%w: labeler", ErrNotFound)
	ErrSampleNotFound  = fmt.Errorf("%w: sample", ErrNotFound)

	// Validation errors
	ErrUnknownTier   = errors.New("unknown experience tier")
	ErrInvalidConfig = errors.New("invalid simulation config")

	// Input errors
	ErrNoLabelers = errors.New("no labelers available")
	ErrNoSamples  = errors.New("no samples available")
)

// NewConfigError reports an invalid simulation parameter
func NewConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfig, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrUnknownTier) || errors.Is(err, ErrInvalidConfig)
}
