package dynamo

import (
	"context"
	"errors"
	"fmt"
	"math"
)

type Simulator struct {
	sys        System
	integrator Integrator
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{sys: sys, integrator: integrator}
}

// Run integrates from x0 and returns the sampled trajectory. x0 is the
// first sample. On an invalid state the samples recorded so far are
// returned together with a *SimulationError.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Trajectory, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}
	if cfg.Adaptive {
		return s.runAdaptive(ctx, x0, cfg)
	}

	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}
	steps := int(math.Round(cfg.Duration / cfg.Dt))
	tr := &Trajectory{
		States: make([]State, 0, steps/every+1),
		Times:  make([]float64, 0, steps/every+1),
	}

	x := x0.Clone()
	tr.States = append(tr.States, x.Clone())
	tr.Times = append(tr.Times, 0)

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return tr, ctx.Err()
		default:
		}

		t := float64(i-1) * cfg.Dt
		x = s.integrator.Step(s.sys, x, t, cfg.Dt)
		tr.StepsTaken++

		if cfg.ValidateState && !x.IsValid() {
			return tr, &SimulationError{Step: i, Time: t + cfg.Dt, State: x, Wrapped: ErrInvalidState}
		}
		if i%every == 0 {
			tr.States = append(tr.States, x.Clone())
			tr.Times = append(tr.Times, float64(i)*cfg.Dt)
		}
	}

	return tr, nil
}

func (s *Simulator) runAdaptive(ctx context.Context, x0 State, cfg Config) (*Trajectory, error) {
	tr := &Trajectory{}
	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	tr.States = append(tr.States, x.Clone())
	tr.Times = append(tr.Times, t)

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return tr, ctx.Err()
		default:
		}

		remaining := cfg.Duration - t
		h := math.Min(dt, remaining)
		// never leave a remainder shorter than MinDt
		if remaining-h < cfg.MinDt {
			h = remaining
		}

		var (
			newX       State
			used, next float64
			err        error
		)
		if h < cfg.MinDt {
			// rounding sliver at the end of the window, taken without error control
			newX, used, next = s.integrator.Step(s.sys, x, t, h), h, dt
		} else {
			newX, used, next, err = s.adaptiveStep(x, t, h, cfg)
		}
		if err != nil {
			return tr, &SimulationError{Step: tr.StepsTaken, Time: t, State: x, Wrapped: err}
		}
		if cfg.ValidateState && !newX.IsValid() {
			return tr, &SimulationError{Step: tr.StepsTaken, Time: t, State: newX, Wrapped: ErrInvalidState}
		}

		x = newX
		if used >= remaining {
			t = cfg.Duration
		} else {
			t += used
		}
		dt = math.Min(next, cfg.MaxDt)
		tr.StepsTaken++
		tr.States = append(tr.States, x.Clone())
		tr.Times = append(tr.Times, t)
	}

	return tr, nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.Adaptive && (cfg.Tolerance <= 0 || cfg.MaxDt <= 0) {
		return fmt.Errorf("%w: tolerance and max dt must be positive for adaptive stepping", ErrInvalidConfig)
	}
	if len(x0) != s.sys.StateDim() {
		return fmt.Errorf("%w: initial state has %d entries, system has %d", ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	return nil
}

// adaptiveStep returns the accepted state, the step actually taken and the
// suggested next step. Integrators without an error estimate fall back to
// step doubling.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if dt < cfg.MinDt {
		return nil, dt, dt, ErrStepTooSmall
	}

	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, next, err := adaptive.StepAdaptive(s.sys, x, t, dt, cfg.Tolerance)
		if errors.Is(err, ErrStepRejected) {
			return s.adaptiveStep(x, t, next, cfg)
		}
		if err != nil {
			return nil, dt, dt, err
		}
		return newX, dt, next, nil
	}

	x1 := s.integrator.Step(s.sys, x, t, dt)
	xHalf := s.integrator.Step(s.sys, x, t, dt/2)
	x2 := s.integrator.Step(s.sys, xHalf, t+dt/2, dt/2)

	errNorm := x1.Sub(x2).Norm()

	if errNorm > cfg.Tolerance {
		return s.adaptiveStep(x, t, dt/2, cfg)
	}

	next := dt
	if errNorm < cfg.Tolerance/10 {
		next = dt * 2
	}

	return x2, dt, next, nil
}
