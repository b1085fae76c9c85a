package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrNamesMismatch = errors.New("analysis: names do not match columns")

// ColumnStats summarizes one feature column.
type ColumnStats struct {
	Name string
	Mean float64
	Std  float64
	Min  float64
	Max  float64
	// Norm is the Euclidean norm of the column.
	Norm float64
}

// Constant reports whether the column varies by at most tol.
func (c ColumnStats) Constant(tol float64) bool {
	return c.Max-c.Min <= tol
}

// Summarize computes statistics for every column of m. names may be nil.
func Summarize(m mat.Matrix, names []string) ([]ColumnStats, error) {
	rows, cols := m.Dims()
	if names != nil && len(names) != cols {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrNamesMismatch, len(names), cols)
	}

	out := make([]ColumnStats, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		mean, std := stat.MeanStdDev(col, nil)
		if rows < 2 {
			std = 0
		}
		out[j] = ColumnStats{
			Name: columnName(names, j),
			Mean: mean,
			Std:  std,
			Min:  floats.Min(col),
			Max:  floats.Max(col),
			Norm: floats.Norm(col, 2),
		}
	}
	return out, nil
}

// Degenerate returns the names of constant columns other than a bias column
// named "1". A column of zeros is always degenerate.
func Degenerate(stats []ColumnStats, tol float64) []string {
	var names []string
	for _, c := range stats {
		if !c.Constant(tol) {
			continue
		}
		if c.Name == "1" && math.Abs(c.Mean-1) <= tol {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// Pair is a pair of columns with their Pearson correlation.
type Pair struct {
	A, B string
	R    float64
}

// Correlated returns the column pairs of m whose absolute correlation is at
// least threshold, strongest first. Constant columns are skipped.
func Correlated(m mat.Matrix, names []string, threshold float64) ([]Pair, error) {
	rows, cols := m.Dims()
	if names != nil && len(names) != cols {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrNamesMismatch, len(names), cols)
	}
	if rows < 2 {
		return nil, nil
	}

	data := make([][]float64, cols)
	for j := range data {
		data[j] = mat.Col(nil, j, m)
	}

	var pairs []Pair
	for a := 0; a < cols; a++ {
		if floats.Max(data[a]) == floats.Min(data[a]) {
			continue
		}
		for b := a + 1; b < cols; b++ {
			if floats.Max(data[b]) == floats.Min(data[b]) {
				continue
			}
			r := stat.Correlation(data[a], data[b], nil)
			if math.Abs(r) >= threshold {
				pairs = append(pairs, Pair{A: columnName(names, a), B: columnName(names, b), R: r})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].R) > math.Abs(pairs[j].R)
	})
	return pairs, nil
}

// Condition returns the 2-norm condition number of m. Rank-deficient
// matrices yield +Inf.
func Condition(m mat.Matrix) float64 {
	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return math.Inf(1)
	}
	return svd.Cond()
}

func columnName(names []string, j int) string {
	if names == nil {
		return fmt.Sprintf("c%d", j)
	}
	return names[j]
}
