package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Func is applied elementwise to one input column.
type Func func(float64) float64

// NameFunc maps an input name to the name of the derived feature.
type NameFunc func(string) string

// Term pairs a function with the function naming its output.
type Term struct {
	Fn   Func
	Name NameFunc
}

// Custom applies user-supplied functions to every input. Columns are
// input-major, then function order as supplied.
type Custom struct {
	fitState
	funcs []Func
	names []NameFunc
}

// NewCustom builds a library from parallel function and name slices. A nil
// names slice selects default names f0(x0), f1(x0), ...; otherwise names must
// have exactly one entry per function.
func NewCustom(funcs []Func, names []NameFunc) (*Custom, error) {
	if len(funcs) == 0 {
		return nil, invalid(KindCustom, "library_functions", "must not be empty")
	}
	for i, fn := range funcs {
		if fn == nil {
			return nil, invalid(KindCustom, fmt.Sprintf("library_functions[%d]", i), "is nil")
		}
	}
	if names == nil {
		names = make([]NameFunc, len(funcs))
		for i := range names {
			names[i] = defaultName(i)
		}
	}
	if len(names) != len(funcs) {
		return nil, invalid(KindCustom, "function_names",
			fmt.Sprintf("has %d entries for %d library functions", len(names), len(funcs)))
	}
	for i, name := range names {
		if name == nil {
			return nil, invalid(KindCustom, fmt.Sprintf("function_names[%d]", i), "is nil")
		}
	}
	return &Custom{
		funcs: append([]Func(nil), funcs...),
		names: append([]NameFunc(nil), names...),
	}, nil
}

// NewCustomTerms builds a library from function/name pairs.
func NewCustomTerms(terms ...Term) (*Custom, error) {
	funcs := make([]Func, len(terms))
	names := make([]NameFunc, len(terms))
	for i, t := range terms {
		funcs[i], names[i] = t.Fn, t.Name
	}
	return NewCustom(funcs, names)
}

func defaultName(i int) NameFunc {
	return func(s string) string { return fmt.Sprintf("f%d(%s)", i, s) }
}

func (c *Custom) Fit(x mat.Matrix) error {
	_, cols, err := checkInput(x)
	if err != nil {
		return err
	}
	c.fitState = fitState{fitted: true, nInputs: cols, nOutputs: cols * len(c.funcs)}
	return nil
}

func (c *Custom) Transform(x mat.Matrix) (*mat.Dense, error) {
	rows, err := c.checkTransform(x)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(rows, c.nOutputs, nil)
	for i := 0; i < rows; i++ {
		col := 0
		for j := 0; j < c.nInputs; j++ {
			v := x.At(i, j)
			for _, fn := range c.funcs {
				out.Set(i, col, fn(v))
				col++
			}
		}
	}
	return out, nil
}

func (c *Custom) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	return fitTransform(c, x)
}

func (c *Custom) FeatureNames(inputNames []string) ([]string, error) {
	in, err := c.inputNames(inputNames)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, c.nOutputs)
	for _, s := range in {
		for _, name := range c.names {
			names = append(names, name(s))
		}
	}
	return names, nil
}
