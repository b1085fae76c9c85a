// Package features provides feature libraries for sparse identification of
// nonlinear dynamics.
//
// A library expands a state matrix X (n_samples × n_inputs) into a matrix of
// candidate basis functions Θ(X) (n_samples × n_outputs):
//
//   - [Polynomial]: monomials up to a given total degree
//   - [Fourier]: sin(k·x) and cos(k·x) terms per input
//   - [Custom]: user-supplied unary functions applied to every input
//   - [Identity]: the inputs themselves
//   - [Concat]: several libraries side by side
//
// Every library implements [Library]. Parameters are validated when the
// library is constructed; the column layout is fixed by Fit and reused by
// every subsequent Transform.
//
// # Example
//
//	lib, err := features.NewPolynomial(features.WithDegree(3))
//	if err != nil {
//	    return err
//	}
//	theta, err := lib.FitTransform(x)
//	names, _ := lib.FeatureNames([]string{"x", "y", "z"})
//
// # Thread Safety
//
// Libraries are NOT thread-safe. Fit mutates the receiver; callers sharing an
// instance across goroutines must serialize Fit against Transform. Distinct
// instances may be used concurrently.
package features
