package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Library expands a state matrix into a matrix of candidate features.
type Library interface {
	// Fit records the input feature count and fixes the output column layout.
	// x is never modified.
	Fit(x mat.Matrix) error

	// Transform evaluates the fitted features on x, one output row per input row.
	Transform(x mat.Matrix) (*mat.Dense, error)

	// FitTransform is Fit followed by Transform on the same x.
	FitTransform(x mat.Matrix) (*mat.Dense, error)

	// FeatureNames returns one name per output column. A nil inputNames
	// selects the default names x0, x1, ...
	FeatureNames(inputNames []string) ([]string, error)

	NumInputFeatures() int
	NumOutputFeatures() int
}

// fitState is the part of a library's state derived by Fit.
type fitState struct {
	fitted   bool
	nInputs  int
	nOutputs int
}

func (s *fitState) NumInputFeatures() int  { return s.nInputs }
func (s *fitState) NumOutputFeatures() int { return s.nOutputs }

func (s *fitState) checkTransform(x mat.Matrix) (int, error) {
	if !s.fitted {
		return 0, ErrNotFitted
	}
	rows, cols, err := checkInput(x)
	if err != nil {
		return 0, err
	}
	if cols != s.nInputs {
		return 0, fmt.Errorf("%w: fitted on %d, got %d", ErrFeatureMismatch, s.nInputs, cols)
	}
	return rows, nil
}

func (s *fitState) inputNames(names []string) ([]string, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	if names == nil {
		return DefaultInputNames(s.nInputs), nil
	}
	if len(names) != s.nInputs {
		return nil, fmt.Errorf("%w: %d input names for %d features", ErrFeatureMismatch, len(names), s.nInputs)
	}
	return names, nil
}

func checkInput(x mat.Matrix) (rows, cols int, err error) {
	if x == nil {
		return 0, 0, ErrEmptyInput
	}
	rows, cols = x.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, fmt.Errorf("%w: shape (%d, %d)", ErrEmptyInput, rows, cols)
	}
	return rows, cols, nil
}

func fitTransform(l Library, x mat.Matrix) (*mat.Dense, error) {
	if err := l.Fit(x); err != nil {
		return nil, err
	}
	return l.Transform(x)
}

// DefaultInputNames returns x0, x1, ..., x{n-1}.
func DefaultInputNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	return names
}
