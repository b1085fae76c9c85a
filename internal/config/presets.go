package config

import (
	"sort"

	"github.com/san-kum/sindy/internal/features"
)

var (
	polynomial2 = features.Config{Kind: features.KindPolynomial, Degree: features.Ptr(2.0)}
	polynomial3 = features.Config{Kind: features.KindPolynomial, Degree: features.Ptr(3.0)}
	fourier2    = features.Config{Kind: features.KindFourier, Frequencies: features.Ptr(2.0)}
)

var Presets = map[string]map[string]*Config{
	"lorenz": {
		"classic": {
			Model: "lorenz", Integrator: "rk4", Dt: DefaultDt, Duration: 5.0, SampleEvery: 10,
			InitState: []float64{8, 27, -7}, Library: polynomial2,
		},
		"cubic": {
			Model: "lorenz", Integrator: "rk4", Dt: 0.001, Duration: 10.0, SampleEvery: 10,
			InitState: []float64{-8, 8, 27}, Library: polynomial3,
		},
		"fourier": {
			Model: "lorenz", Integrator: "rk4", Dt: DefaultDt, Duration: 5.0, SampleEvery: 10,
			InitState: []float64{8, 27, -7}, Library: fourier2,
		},
		"custom": {
			Model: "lorenz", Integrator: "rk4", Dt: DefaultDt, Duration: 5.0, SampleEvery: 10,
			InitState: []float64{8, 27, -7},
			Library:   features.Config{Kind: features.KindCustom, Functions: []string{"identity", "square", "zero"}},
		},
		"ensemble": {
			Model: "lorenz", Integrator: "rk45", Dt: 0.002, Duration: 5.0, SampleEvery: 5,
			InitState: []float64{8, 27, -7}, Trajectories: 4, Perturbation: 1.0, Seed: 1,
			Library: polynomial2,
		},
	},
	"rossler": {
		"classic": {
			Model: "rossler", Integrator: "rk4", Dt: 0.01, Duration: 50.0, SampleEvery: 5,
			InitState: []float64{1, 1, 1}, Library: polynomial2,
		},
	},
	"vanderpol": {
		"limit_cycle": {
			Model: "vanderpol", Integrator: "rk4", Dt: 0.01, Duration: 20.0, SampleEvery: 2,
			InitState: []float64{2, 0}, Library: polynomial3,
		},
		"stiff": {
			Model: "vanderpol", Integrator: "rk45", Dt: 0.001, Duration: 20.0, SampleEvery: 1,
			Adaptive: true, Tolerance: 1e-8,
			InitState: []float64{2, 0}, Params: map[string]float64{"mu": 5}, Library: polynomial3,
		},
	},
	"duffing": {
		"forced": {
			Model: "duffing", Integrator: "rk4", Dt: 0.01, Duration: 30.0, SampleEvery: 5,
			InitState: []float64{1, 0, 0},
			Library: features.Config{Kind: features.KindConcat, Libraries: []features.Config{
				polynomial3,
				{Kind: features.KindFourier, IncludeSin: features.Ptr(false)},
			}},
		},
	},
}

// GetPreset returns a copy of the named preset with unset fields defaulted,
// or nil when it does not exist.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	p, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Trajectories == 0 {
		cfg.Trajectories = 1
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	cfg.Log = DefaultConfig().Log
	return &cfg
}

// ListPresets returns the preset names for model, sorted, or nil.
func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
