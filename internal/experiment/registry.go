package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/sindy/internal/dynamo"
	"github.com/san-kum/sindy/internal/features"
	"github.com/san-kum/sindy/internal/integrators"
	"github.com/san-kum/sindy/internal/physics"
)

// Model is a system that also knows its conventional initial state.
type Model interface {
	dynamo.System
	dynamo.Configurable
	DefaultState() dynamo.State
}

type Registry struct {
	models      map[string]func() Model
	integrators map[string]func() dynamo.Integrator
	inputNames  map[string][]string
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() Model),
		integrators: make(map[string]func() dynamo.Integrator),
		inputNames:  make(map[string][]string),
	}

	r.models["lorenz"] = func() Model { return physics.NewLorenz() }
	r.models["rossler"] = func() Model { return physics.NewRossler() }
	r.models["vanderpol"] = func() Model { return physics.NewVanDerPol() }
	r.models["duffing"] = func() Model { return physics.NewDuffing() }

	r.inputNames["lorenz"] = []string{"x", "y", "z"}
	r.inputNames["rossler"] = []string{"x", "y", "z"}
	r.inputNames["vanderpol"] = []string{"x", "y"}
	r.inputNames["duffing"] = []string{"x", "v", "phi"}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) GetModel(name string) (Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s (available: %v)", name, r.ListModels())
	}
	return fn(), nil
}

// IntegratorFactory returns a constructor for the named integrator.
func (r *Registry) IntegratorFactory(name string) (func() dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn, nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, err := r.IntegratorFactory(name)
	if err != nil {
		return nil, err
	}
	return fn(), nil
}

// GetLibrary builds an unfitted library from its declarative description.
func (r *Registry) GetLibrary(cfg features.Config) (features.Library, error) {
	return features.FromConfig(cfg)
}

// InputNames returns the symbolic state names of a model, falling back to
// x0, x1, ... for dim entries.
func (r *Registry) InputNames(model string, dim int) []string {
	if names, ok := r.inputNames[model]; ok && len(names) == dim {
		return append([]string(nil), names...)
	}
	return features.DefaultInputNames(dim)
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
