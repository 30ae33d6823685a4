package model

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by model constructors and oracles.
var (
	ErrUnknownModel     = errors.New("model: unknown spectral model")
	ErrUnknownParameter = errors.New("model: unknown parameter")
	ErrMissingParameter = errors.New("model: missing parameter")
	ErrInvalidScale     = errors.New("model: scale energy must be positive")
)

// Oracle evaluates a fitted spectral model.
type Oracle interface {
	// Value returns dN/dE at energy (MeV).
	Value(energy float64) float64
	// Gradient returns ∂(dN/dE)/∂p at energy for each named parameter, in
	// the order given.
	Gradient(energy float64, params []string) ([]float64, error)
	// FreeParams returns the ordered free parameter names. The covariance
	// matrix of a fit is indexed in this order.
	FreeParams() []string
}

// Factory builds an oracle from a parameter map and a free-parameter list.
type Factory func(params map[string]float64, free []string) (Oracle, error)

var factories = map[string]Factory{
	"PowerLaw":         newPowerLaw,
	"LogParabola":      newLogParabola,
	"PLSuperExpCutoff": newPLSuperExpCutoff,
}

// New builds the named spectral model. An empty free list selects the
// model's default free parameters.
func New(name string, params map[string]float64, free []string) (Oracle, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return f(params, free)
}

// Names returns the registered model names in sorted order.
func Names() []string {
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// lookup reads the required parameter names from params.
func lookup(params map[string]float64, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, n := range names {
		v, ok := params[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingParameter, n)
		}
		out[i] = v
	}
	return out, nil
}

// checkFree verifies that every name in free is one of known.
func checkFree(free []string, known ...string) error {
	for _, f := range free {
		found := false
		for _, k := range known {
			if f == k {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrUnknownParameter, f)
		}
	}
	return nil
}

// gradient evaluates deriv for each name, failing on the first unknown one.
func gradient(params []string, deriv func(name string) (float64, bool)) ([]float64, error) {
	out := make([]float64, len(params))
	for i, p := range params {
		d, ok := deriv(p)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, p)
		}
		out[i] = d
	}
	return out, nil
}

func cloneNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
