package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/sindy/internal/config"
	"github.com/san-kum/sindy/internal/dynamo"
	"github.com/san-kum/sindy/internal/features"
)

// Result holds the simulated trajectories and their expansion through the
// configured library.
type Result struct {
	Trajectories []*dynamo.Trajectory
	// X stacks the samples of all trajectories, n_samples × n_inputs.
	X            *mat.Dense
	InputNames   []string
	Theta        *mat.Dense
	FeatureNames []string
	Library      features.Library
}

type Experiment struct {
	cfg        *config.Config
	registry   *Registry
	log        *zap.Logger
	randSource *rand.Rand
}

func New(cfg *config.Config, registry *Registry, log *zap.Logger) *Experiment {
	if log == nil {
		log = zap.NewNop()
	}
	return &Experiment{
		cfg:        cfg,
		registry:   registry,
		log:        log.Named("experiment"),
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Simulate generates the configured trajectories without expanding them.
func (e *Experiment) Simulate(ctx context.Context) ([]*dynamo.Trajectory, []string, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, nil, err
	}

	model, err := e.registry.GetModel(e.cfg.Model)
	if err != nil {
		return nil, nil, err
	}
	for name, v := range e.cfg.Params {
		if err := model.SetParam(name, v); err != nil {
			return nil, nil, err
		}
	}
	newIntegrator, err := e.registry.IntegratorFactory(e.cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}

	x0 := dynamo.State(e.cfg.InitState)
	if len(x0) == 0 {
		x0 = model.DefaultState()
	}

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = e.cfg.Dt
	simCfg.Duration = e.cfg.Duration
	simCfg.SampleEvery = e.cfg.SampleEvery
	simCfg.Adaptive = e.cfg.Adaptive
	simCfg.Tolerance = e.cfg.Tolerance

	start := time.Now()
	trajs, err := dynamo.NewEnsemble(model, newIntegrator).Run(ctx, e.initialStates(x0), simCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("simulate %s: %w", e.cfg.Model, err)
	}

	names := e.cfg.InputNames
	if len(names) == 0 {
		names = e.registry.InputNames(e.cfg.Model, model.StateDim())
	}

	e.log.Info("simulated",
		zap.String("model", e.cfg.Model),
		zap.String("integrator", e.cfg.Integrator),
		zap.Int("trajectories", len(trajs)),
		zap.Int("samples", trajs[0].Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return trajs, names, nil
}

// initialStates returns x0 followed by Trajectories-1 perturbed copies.
func (e *Experiment) initialStates(x0 dynamo.State) []dynamo.State {
	states := make([]dynamo.State, e.cfg.Trajectories)
	states[0] = x0.Clone()
	for k := 1; k < len(states); k++ {
		s := x0.Clone()
		for i := range s {
			s[i] += e.cfg.Perturbation * e.randSource.NormFloat64()
		}
		states[k] = s
	}
	return states
}

// Run simulates the trajectories and expands them through the library.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	lib, err := e.registry.GetLibrary(e.cfg.Library)
	if err != nil {
		return nil, err
	}

	trajs, names, err := e.Simulate(ctx)
	if err != nil {
		return nil, err
	}

	x := dynamo.Stack(trajs...)
	theta, err := lib.FitTransform(x)
	if err != nil {
		return nil, fmt.Errorf("expand features: %w", err)
	}
	featureNames, err := lib.FeatureNames(names)
	if err != nil {
		return nil, fmt.Errorf("feature names: %w", err)
	}

	r, c := theta.Dims()
	e.log.Debug("expanded",
		zap.String("library", e.cfg.Library.Kind),
		zap.Int("rows", r),
		zap.Int("features", c),
		zap.Strings("names", featureNames),
	)

	return &Result{
		Trajectories: trajs,
		X:            x,
		InputNames:   names,
		Theta:        theta,
		FeatureNames: featureNames,
		Library:      lib,
	}, nil
}
