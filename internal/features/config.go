package features

import (
	"fmt"
	"math"
	"strings"
)

// Library kinds understood by FromConfig.
const (
	KindPolynomial = "polynomial"
	KindFourier    = "fourier"
	KindCustom     = "custom"
	KindIdentity   = "identity"
	KindConcat     = "concat"
)

// Kinds lists every kind accepted by FromConfig.
var Kinds = []string{KindPolynomial, KindFourier, KindCustom, KindIdentity, KindConcat}

// Config describes a library declaratively, typically decoded from YAML.
// Unset fields keep the library defaults. Integer parameters are decoded as
// floats so that values such as 1.5 are rejected instead of truncated.
type Config struct {
	Kind string `yaml:"kind" json:"kind"`

	Degree             *float64 `yaml:"degree,omitempty" json:"degree,omitempty"`
	IncludeInteraction *bool    `yaml:"include_interaction,omitempty" json:"include_interaction,omitempty"`
	InteractionOnly    *bool    `yaml:"interaction_only,omitempty" json:"interaction_only,omitempty"`
	IncludeBias        *bool    `yaml:"include_bias,omitempty" json:"include_bias,omitempty"`

	Frequencies *float64 `yaml:"n_frequencies,omitempty" json:"n_frequencies,omitempty"`
	IncludeSin  *bool    `yaml:"include_sin,omitempty" json:"include_sin,omitempty"`
	IncludeCos  *bool    `yaml:"include_cos,omitempty" json:"include_cos,omitempty"`

	Functions []string `yaml:"functions,omitempty" json:"functions,omitempty"`

	Libraries []Config `yaml:"libraries,omitempty" json:"libraries,omitempty"`
}

// Ptr returns a pointer to v, for filling optional Config fields.
func Ptr[T any](v T) *T { return &v }

// FromConfig constructs the library described by cfg.
func FromConfig(cfg Config) (Library, error) {
	switch kind := strings.ToLower(strings.TrimSpace(cfg.Kind)); kind {
	case KindPolynomial:
		return polynomialFromConfig(cfg)
	case KindFourier:
		return fourierFromConfig(cfg)
	case KindCustom:
		return customFromConfig(cfg)
	case KindIdentity:
		return NewIdentity(), nil
	case KindConcat:
		return concatFromConfig(cfg)
	case "":
		return nil, invalid("library", "kind", "is required")
	default:
		return nil, invalid("library", "kind", fmt.Sprintf("%q is not one of %v", kind, Kinds))
	}
}

func polynomialFromConfig(cfg Config) (Library, error) {
	var opts []PolynomialOption
	if cfg.Degree != nil {
		d, err := integral(KindPolynomial, "degree", *cfg.Degree, 0)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDegree(d))
	}
	if cfg.IncludeInteraction != nil {
		opts = append(opts, WithInteraction(*cfg.IncludeInteraction))
	}
	if cfg.InteractionOnly != nil {
		opts = append(opts, WithInteractionOnly(*cfg.InteractionOnly))
	}
	if cfg.IncludeBias != nil {
		opts = append(opts, WithBias(*cfg.IncludeBias))
	}
	p, err := NewPolynomial(opts...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func fourierFromConfig(cfg Config) (Library, error) {
	var opts []FourierOption
	if cfg.Frequencies != nil {
		n, err := integral(KindFourier, "n_frequencies", *cfg.Frequencies, 1)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithFrequencies(n))
	}
	if cfg.IncludeSin != nil {
		opts = append(opts, WithSin(*cfg.IncludeSin))
	}
	if cfg.IncludeCos != nil {
		opts = append(opts, WithCos(*cfg.IncludeCos))
	}
	f, err := NewFourier(opts...)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func customFromConfig(cfg Config) (Library, error) {
	terms := make([]Term, 0, len(cfg.Functions))
	for _, name := range cfg.Functions {
		t, err := Function(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	c, err := NewCustomTerms(terms...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func concatFromConfig(cfg Config) (Library, error) {
	libs := make([]Library, 0, len(cfg.Libraries))
	for i, sub := range cfg.Libraries {
		l, err := FromConfig(sub)
		if err != nil {
			return nil, fmt.Errorf("libraries[%d]: %w", i, err)
		}
		libs = append(libs, l)
	}
	c, err := NewConcat(libs...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// integral converts a decoded numeric parameter to an int no smaller than min.
func integral(library, param string, v float64, min int) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, invalid(library, param, fmt.Sprintf("must be an integer, got %v", v))
	}
	if v < float64(min) {
		return 0, invalid(library, param, fmt.Sprintf("must be >= %d, got %v", min, v))
	}
	if v > math.MaxInt32 {
		return 0, invalid(library, param, fmt.Sprintf("is too large: %v", v))
	}
	return int(v), nil
}
