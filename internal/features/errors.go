package features

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates contradictory or out-of-domain library parameters.
	ErrInvalidConfig = errors.New("features: invalid library configuration")

	// ErrNotFitted indicates Transform or FeatureNames was called before Fit.
	ErrNotFitted = errors.New("features: library is not fitted")

	// ErrFeatureMismatch indicates input with a different feature count than seen by Fit.
	ErrFeatureMismatch = errors.New("features: input feature count mismatch")

	// ErrEmptyInput indicates an input matrix with no samples or no features.
	ErrEmptyInput = errors.New("features: input matrix is empty")
)

// ConfigError describes which parameter of which library was rejected.
type ConfigError struct {
	Library string
	Param   string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("features: %s: %s", e.Library, e.Reason)
	}
	return fmt.Sprintf("features: %s: %s %s", e.Library, e.Param, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(library, param, reason string) error {
	return &ConfigError{Library: library, Param: param, Reason: reason}
}
