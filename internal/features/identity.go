package features

import "gonum.org/v1/gonum/mat"

// Identity passes the inputs through unchanged.
type Identity struct {
	fitState
}

func NewIdentity() *Identity { return &Identity{} }

func (l *Identity) Fit(x mat.Matrix) error {
	_, cols, err := checkInput(x)
	if err != nil {
		return err
	}
	l.fitState = fitState{fitted: true, nInputs: cols, nOutputs: cols}
	return nil
}

func (l *Identity) Transform(x mat.Matrix) (*mat.Dense, error) {
	if _, err := l.checkTransform(x); err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(x), nil
}

func (l *Identity) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	return fitTransform(l, x)
}

func (l *Identity) FeatureNames(inputNames []string) ([]string, error) {
	in, err := l.inputNames(inputNames)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), in...), nil
}
