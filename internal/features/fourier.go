package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultFrequencies is the frequency count used when WithFrequencies is not given.
const DefaultFrequencies = 1

// Fourier generates sin(k·x) and cos(k·x) for every input x and every
// frequency k in 1..n. Columns are input-major, then frequency ascending,
// with sin before cos.
type Fourier struct {
	fitState
	frequencies int
	sin, cos    bool
}

// FourierOption configures a Fourier built by NewFourier.
type FourierOption func(*Fourier)

// WithFrequencies sets the number of frequencies (default 1).
func WithFrequencies(n int) FourierOption {
	return func(f *Fourier) { f.frequencies = n }
}

// WithSin toggles the sin(k x) columns (default true).
func WithSin(on bool) FourierOption {
	return func(f *Fourier) { f.sin = on }
}

// WithCos toggles the cos(k x) columns (default true).
func WithCos(on bool) FourierOption {
	return func(f *Fourier) { f.cos = on }
}

// NewFourier returns a library with one frequency and both sin and cos terms
// unless opts say otherwise. Fewer than one frequency or neither sin nor cos
// yields an error matching ErrInvalidConfig.
func NewFourier(opts ...FourierOption) (*Fourier, error) {
	f := &Fourier{frequencies: DefaultFrequencies, sin: true, cos: true}
	for _, opt := range opts {
		opt(f)
	}
	if f.frequencies < 1 {
		return nil, invalid(KindFourier, "n_frequencies", fmt.Sprintf("must be >= 1, got %d", f.frequencies))
	}
	if !f.sin && !f.cos {
		return nil, invalid(KindFourier, "", "include_sin and include_cos are both false")
	}
	return f, nil
}

func (f *Fourier) Frequencies() int { return f.frequencies }

func (f *Fourier) termsPerFrequency() int {
	n := 0
	if f.sin {
		n++
	}
	if f.cos {
		n++
	}
	return n
}

func (f *Fourier) Fit(x mat.Matrix) error {
	_, cols, err := checkInput(x)
	if err != nil {
		return err
	}
	f.fitState = fitState{
		fitted:   true,
		nInputs:  cols,
		nOutputs: cols * f.frequencies * f.termsPerFrequency(),
	}
	return nil
}

func (f *Fourier) Transform(x mat.Matrix) (*mat.Dense, error) {
	rows, err := f.checkTransform(x)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(rows, f.nOutputs, nil)
	for i := 0; i < rows; i++ {
		col := 0
		for j := 0; j < f.nInputs; j++ {
			v := x.At(i, j)
			for k := 1; k <= f.frequencies; k++ {
				arg := float64(k) * v
				if f.sin {
					out.Set(i, col, math.Sin(arg))
					col++
				}
				if f.cos {
					out.Set(i, col, math.Cos(arg))
					col++
				}
			}
		}
	}
	return out, nil
}

func (f *Fourier) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	return fitTransform(f, x)
}

func (f *Fourier) FeatureNames(inputNames []string) ([]string, error) {
	in, err := f.inputNames(inputNames)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, f.nOutputs)
	for _, name := range in {
		for k := 1; k <= f.frequencies; k++ {
			if f.sin {
				names = append(names, fmt.Sprintf("sin(%d %s)", k, name))
			}
			if f.cos {
				names = append(names, fmt.Sprintf("cos(%d %s)", k, name))
			}
		}
	}
	return names, nil
}
