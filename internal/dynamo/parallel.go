package dynamo

import (
	"context"
	"sync"
)

// Ensemble simulates one system from several initial states concurrently.
type Ensemble struct {
	sys           System
	newIntegrator func() Integrator
}

// NewEnsemble takes an integrator factory because integrators keep
// per-instance scratch buffers.
func NewEnsemble(sys System, newIntegrator func() Integrator) *Ensemble {
	return &Ensemble{sys: sys, newIntegrator: newIntegrator}
}

// Run returns one trajectory per initial state, in the order given. The
// first error encountered (by index) is returned.
func (e *Ensemble) Run(ctx context.Context, x0s []State, cfg Config) ([]*Trajectory, error) {
	results := make([]*Trajectory, len(x0s))
	errs := make([]error, len(x0s))

	var wg sync.WaitGroup
	for i := range x0s {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s := New(e.sys, e.newIntegrator())
			results[idx], errs[idx] = s.Run(ctx, x0s[idx], cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
