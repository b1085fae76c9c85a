package dynamo

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decay is dx/dt = -x, integrated with explicit Euler.
type decay struct{}

func (decay) StateDim() int                   { return 1 }
func (decay) Derive(x State, _ float64) State { return State{-x[0]} }

type euler struct{}

func (euler) Step(sys System, x State, t, dt float64) State {
	dx := sys.Derive(x, t)
	return State{x[0] + dt*dx[0]}
}

type blowup struct{}

func (blowup) StateDim() int                   { return 1 }
func (blowup) Derive(x State, _ float64) State { return State{math.Inf(1)} }

func TestSimulator_Run(t *testing.T) {
	s := New(decay{}, euler{})
	cfg := DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 1.0

	tr, err := s.Run(context.Background(), State{1.0}, cfg)
	require.NoError(t, err)

	assert.Equal(t, 101, tr.Len())
	assert.Equal(t, 100, tr.StepsTaken)
	assert.InDelta(t, math.Exp(-1), tr.States[tr.Len()-1][0], 0.01)
	assert.InDelta(t, 1.0, tr.Times[tr.Len()-1], 1e-12)
}

func TestSimulator_SampleEvery(t *testing.T) {
	s := New(decay{}, euler{})
	cfg := DefaultConfig()
	cfg.Dt = 5.0 / 990
	cfg.Duration = 5.0
	cfg.SampleEvery = 10

	tr, err := s.Run(context.Background(), State{1.0}, cfg)
	require.NoError(t, err)

	require.Equal(t, 100, tr.Len())
	assert.InDelta(t, 5.0, tr.Times[99], 1e-9)
}

func TestSimulator_InvalidConfig(t *testing.T) {
	s := New(decay{}, euler{})

	_, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0, Duration: 1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = s.Run(context.Background(), State{1.0, 2.0}, DefaultConfig())
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSimulator_InvalidState(t *testing.T) {
	s := New(blowup{}, euler{})

	tr, err := s.Run(context.Background(), State{1.0}, DefaultConfig())

	var simErr *SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 1, tr.Len(), "only the initial sample")
}

func TestSimulator_Canceled(t *testing.T) {
	s := New(decay{}, euler{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, State{1.0}, DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_AdaptiveFallback(t *testing.T) {
	s := New(decay{}, euler{})
	cfg := DefaultConfig()
	cfg.Adaptive = true
	cfg.Duration = 1.0
	cfg.Tolerance = 1e-4

	tr, err := s.Run(context.Background(), State{1.0}, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1.0, tr.Times[tr.Len()-1])
	for i := 1; i < tr.Len(); i++ {
		require.Greater(t, tr.Times[i], tr.Times[i-1], "times not increasing at %d", i)
	}
}

func TestEnsemble_Run(t *testing.T) {
	e := NewEnsemble(decay{}, func() Integrator { return euler{} })
	cfg := DefaultConfig()
	cfg.Duration = 0.5

	trs, err := e.Run(context.Background(), []State{{1}, {2}, {3}}, cfg)
	require.NoError(t, err)
	require.Len(t, trs, 3)
	for i, tr := range trs {
		assert.Equal(t, float64(i+1), tr.States[0][0], "trajectory %d", i)
	}

	r, _ := Stack(trs...).Dims()
	assert.Equal(t, 3*trs[0].Len(), r)
}
