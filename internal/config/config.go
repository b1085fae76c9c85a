package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sindy/internal/features"
	"github.com/san-kum/sindy/internal/logging"
)

const (
	DefaultModel       = "lorenz"
	DefaultIntegrator  = "rk4"
	DefaultDuration    = 5.0
	DefaultSamples     = 100
	DefaultSampleEvery = 10
	DefaultDt          = DefaultDuration / ((DefaultSamples - 1) * DefaultSampleEvery)
	DefaultTolerance   = 1e-6
)

// Config describes one run: which trajectories to generate and which
// feature library to expand them with.
type Config struct {
	Model        string             `yaml:"model"`
	Integrator   string             `yaml:"integrator"`
	Dt           float64            `yaml:"dt"`
	Duration     float64            `yaml:"duration"`
	SampleEvery  int                `yaml:"sample_every"`
	Adaptive     bool               `yaml:"adaptive"`
	Tolerance    float64            `yaml:"tolerance"`
	Seed         int64              `yaml:"seed"`
	InitState    []float64          `yaml:"init_state"`
	Params       map[string]float64 `yaml:"params"`
	Trajectories int                `yaml:"trajectories"`
	// Perturbation is the standard deviation of the Gaussian noise added to
	// InitState for every trajectory after the first.
	Perturbation float64         `yaml:"perturbation"`
	InputNames   []string        `yaml:"input_names"`
	Library      features.Config `yaml:"library"`
	Log          logging.Config  `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:        DefaultModel,
		Integrator:   DefaultIntegrator,
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		SampleEvery:  DefaultSampleEvery,
		Tolerance:    DefaultTolerance,
		Trajectories: 1,
		Library:      features.Config{Kind: features.KindPolynomial},
		Log:          logging.DefaultConfig(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the simulation settings. The library section is checked
// when the library is built.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("config: model is required")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if c.SampleEvery < 1 {
		return fmt.Errorf("config: sample_every must be >= 1, got %d", c.SampleEvery)
	}
	if c.Trajectories < 1 {
		return fmt.Errorf("config: trajectories must be >= 1, got %d", c.Trajectories)
	}
	if c.Perturbation < 0 {
		return fmt.Errorf("config: perturbation must be >= 0, got %f", c.Perturbation)
	}
	if c.Adaptive && c.Tolerance <= 0 {
		return fmt.Errorf("config: tolerance must be positive for adaptive runs")
	}
	return nil
}
