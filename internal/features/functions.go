package features

import (
	"fmt"
	"math"
	"sort"
)

var builtinTerms = map[string]Term{
	"identity": {
		Fn:   func(x float64) float64 { return x },
		Name: func(s string) string { return s },
	},
	"square": {
		Fn:   func(x float64) float64 { return x * x },
		Name: func(s string) string { return s + "^2" },
	},
	"cube": {
		Fn:   func(x float64) float64 { return x * x * x },
		Name: func(s string) string { return s + "^3" },
	},
	"zero": {
		Fn:   func(float64) float64 { return 0 },
		Name: func(string) string { return "0" },
	},
	"inverse": {
		Fn:   func(x float64) float64 { return 1 / x },
		Name: func(s string) string { return "1/" + s },
	},
	"abs": {
		Fn:   math.Abs,
		Name: func(s string) string { return "|" + s + "|" },
	},
	"sin":  wrapped("sin", math.Sin),
	"cos":  wrapped("cos", math.Cos),
	"exp":  wrapped("exp", math.Exp),
	"tanh": wrapped("tanh", math.Tanh),
}

func wrapped(name string, fn Func) Term {
	return Term{Fn: fn, Name: func(s string) string { return name + "(" + s + ")" }}
}

// Function looks up a named term for custom libraries built from a Config.
func Function(name string) (Term, error) {
	t, ok := builtinTerms[name]
	if !ok {
		return Term{}, invalid(KindCustom, "functions", fmt.Sprintf("unknown function %q", name))
	}
	return t, nil
}

// FunctionNames lists the names accepted by Function, sorted.
func FunctionNames() []string {
	names := make([]string, 0, len(builtinTerms))
	for name := range builtinTerms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
