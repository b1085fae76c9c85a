// Package analysis inspects sampled trajectories and feature matrices.
//
//   - [Summarize]: per-column statistics of a feature matrix
//   - [Degenerate]: columns that carry no information (constant or zero)
//   - [Correlated]: column pairs that are nearly collinear
//   - [Condition]: condition number of a feature matrix
//   - [NewPhasePortrait]: two columns of a matrix plotted against each other
//   - [NewPoincareSection]: samples where one column crosses a threshold
//
// A library that produces degenerate or collinear columns makes the
// downstream sparse regression ill-posed:
//
//	stats, _ := analysis.Summarize(theta, names)
//	for _, name := range analysis.Degenerate(stats, 1e-12) {
//	    fmt.Println("drop", name)
//	}
package analysis
