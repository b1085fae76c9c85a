package integrators

import "github.com/san-kum/sindy/internal/dynamo"

// Euler is the explicit first-order forward Euler scheme. It is stateless and
// safe for concurrent use.
type Euler struct{}

// NewEuler returns a forward Euler integrator.
func NewEuler() *Euler {
	return &Euler{}
}

// Step returns x + dt*f(x, t) as a new state.
func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := sys.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
