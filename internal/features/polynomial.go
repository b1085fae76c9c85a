package features

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"
)

// DefaultDegree is the maximum total degree used when WithDegree is not given.
const DefaultDegree = 2

// Polynomial generates all monomials of the inputs up to a total degree.
//
// Columns are ordered by total degree, then lexicographically by the sorted
// variable indices of each monomial. For three inputs and degree 2:
//
//	1, x0, x1, x2, x0^2, x0 x1, x0 x2, x1^2, x1 x2, x2^2
type Polynomial struct {
	fitState
	degree          int
	interaction     bool
	interactionOnly bool
	bias            bool

	// exponent vector of each output column
	powers [][]int
}

// PolynomialOption configures a Polynomial built by NewPolynomial.
type PolynomialOption func(*Polynomial)

// WithDegree sets the maximum total degree (default 2).
func WithDegree(d int) PolynomialOption {
	return func(p *Polynomial) { p.degree = d }
}

// WithInteraction toggles cross terms such as x0 x1 (default true). Without
// interactions only the bias and pure powers x_i^k remain.
func WithInteraction(on bool) PolynomialOption {
	return func(p *Polynomial) { p.interaction = on }
}

// WithInteractionOnly drops every monomial in which a variable has an
// exponent above one (default false).
func WithInteractionOnly(on bool) PolynomialOption {
	return func(p *Polynomial) { p.interactionOnly = on }
}

// WithBias toggles the constant column "1" (default true).
func WithBias(on bool) PolynomialOption {
	return func(p *Polynomial) { p.bias = on }
}

// NewPolynomial returns a degree 2 library with bias and interactions unless
// opts say otherwise. Contradictory options yield an error matching
// ErrInvalidConfig.
func NewPolynomial(opts ...PolynomialOption) (*Polynomial, error) {
	p := &Polynomial{degree: DefaultDegree, interaction: true, bias: true}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Polynomial) validate() error {
	if p.degree < 0 {
		return invalid(KindPolynomial, "degree", fmt.Sprintf("must be >= 0, got %d", p.degree))
	}
	if p.interactionOnly && !p.interaction {
		return invalid(KindPolynomial, "interaction_only", "requires include_interaction")
	}
	if p.degree == 0 && !p.bias {
		return invalid(KindPolynomial, "", "degree 0 without bias has no terms")
	}
	return nil
}

func (p *Polynomial) Degree() int { return p.degree }

func (p *Polynomial) Fit(x mat.Matrix) error {
	_, cols, err := checkInput(x)
	if err != nil {
		return err
	}
	p.powers = p.terms(cols)
	p.fitState = fitState{fitted: true, nInputs: cols, nOutputs: len(p.powers)}
	return nil
}

func (p *Polynomial) terms(n int) [][]int {
	var powers [][]int
	first := 0
	if !p.bias {
		first = 1
	}
	for deg := first; deg <= p.degree; deg++ {
		for _, idx := range combinationsWithReplacement(n, deg) {
			if !p.keep(idx) {
				continue
			}
			pow := make([]int, n)
			for _, i := range idx {
				pow[i]++
			}
			powers = append(powers, pow)
		}
	}
	return powers
}

// keep applies the interaction flags to a sorted index tuple.
func (p *Polynomial) keep(idx []int) bool {
	for k := 1; k < len(idx); k++ {
		repeated := idx[k] == idx[k-1]
		if p.interactionOnly && repeated {
			return false
		}
		if !p.interaction && !repeated {
			return false
		}
	}
	return true
}

// combinationsWithReplacement lists the non-decreasing index tuples of
// length k over n variables in lexicographic order. A k-combination c of
// n+k-1 elements maps to the tuple c[i]-i.
func combinationsWithReplacement(n, k int) [][]int {
	if k == 0 {
		return [][]int{{}}
	}
	combs := combin.Combinations(n+k-1, k)
	for _, c := range combs {
		for i := range c {
			c[i] -= i
		}
	}
	slices.SortFunc(combs, func(a, b []int) int { return slices.Compare(a, b) })
	return combs
}

func (p *Polynomial) Transform(x mat.Matrix) (*mat.Dense, error) {
	rows, err := p.checkTransform(x)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(rows, p.nOutputs, nil)
	row := make([]float64, p.nInputs)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, x)
		for k, pow := range p.powers {
			out.Set(i, k, monomial(row, pow))
		}
	}
	return out, nil
}

func (p *Polynomial) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	return fitTransform(p, x)
}

func (p *Polynomial) FeatureNames(inputNames []string) ([]string, error) {
	in, err := p.inputNames(inputNames)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(p.powers))
	for k, pow := range p.powers {
		names[k] = monomialName(in, pow)
	}
	return names, nil
}

func monomial(row []float64, pow []int) float64 {
	v := 1.0
	for j, e := range pow {
		for ; e > 0; e-- {
			v *= row[j]
		}
	}
	return v
}

func monomialName(in []string, pow []int) string {
	var factors []string
	for j, e := range pow {
		switch {
		case e == 1:
			factors = append(factors, in[j])
		case e > 1:
			factors = append(factors, fmt.Sprintf("%s^%d", in[j], e))
		}
	}
	if len(factors) == 0 {
		return "1"
	}
	return strings.Join(factors, " ")
}
