package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Concat places the outputs of several libraries side by side, in the
// order the libraries were given.
type Concat struct {
	fitState
	libs []Library
}

// NewConcat requires at least one non-nil library. The slice is copied.
func NewConcat(libs ...Library) (*Concat, error) {
	if len(libs) == 0 {
		return nil, invalid(KindConcat, "libraries", "must not be empty")
	}
	for i, l := range libs {
		if l == nil {
			return nil, invalid(KindConcat, fmt.Sprintf("libraries[%d]", i), "is nil")
		}
	}
	return &Concat{libs: append([]Library(nil), libs...)}, nil
}

func (c *Concat) Libraries() []Library { return c.libs }

func (c *Concat) Fit(x mat.Matrix) error {
	_, cols, err := checkInput(x)
	if err != nil {
		return err
	}
	total := 0
	for _, l := range c.libs {
		if err := l.Fit(x); err != nil {
			return err
		}
		total += l.NumOutputFeatures()
	}
	c.fitState = fitState{fitted: true, nInputs: cols, nOutputs: total}
	return nil
}

func (c *Concat) Transform(x mat.Matrix) (*mat.Dense, error) {
	rows, err := c.checkTransform(x)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(rows, c.nOutputs, nil)
	off := 0
	for _, l := range c.libs {
		part, err := l.Transform(x)
		if err != nil {
			return nil, err
		}
		_, n := part.Dims()
		out.Slice(0, rows, off, off+n).(*mat.Dense).Copy(part)
		off += n
	}
	return out, nil
}

func (c *Concat) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	return fitTransform(c, x)
}

func (c *Concat) FeatureNames(inputNames []string) ([]string, error) {
	in, err := c.inputNames(inputNames)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, c.nOutputs)
	for _, l := range c.libs {
		part, err := l.FeatureNames(in)
		if err != nil {
			return nil, err
		}
		names = append(names, part...)
	}
	return names, nil
}
