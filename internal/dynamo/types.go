package dynamo

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous or time-dependent ODE without control input.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

// Configurable systems expose named parameters.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt       float64
	Duration float64
	// SampleEvery records one state every SampleEvery fixed steps.
	SampleEvery   int
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		SampleEvery:   1,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

// Trajectory is a sampled solution: States[i] is the state at Times[i].
type Trajectory struct {
	States     []State
	Times      []float64
	StepsTaken int
}

func (tr *Trajectory) Len() int { return len(tr.States) }

// Matrix returns the samples as an n_samples × state_dim matrix.
func (tr *Trajectory) Matrix() *mat.Dense {
	return Stack(tr)
}

// Stack concatenates the samples of several trajectories row-wise.
// It returns nil when there are no samples.
func Stack(trs ...*Trajectory) *mat.Dense {
	rows, cols := 0, 0
	for _, tr := range trs {
		rows += len(tr.States)
		if cols == 0 && len(tr.States) > 0 {
			cols = len(tr.States[0])
		}
	}
	if rows == 0 || cols == 0 {
		return nil
	}
	m := mat.NewDense(rows, cols, nil)
	i := 0
	for _, tr := range trs {
		for _, s := range tr.States {
			m.SetRow(i, s)
			i++
		}
	}
	return m
}
