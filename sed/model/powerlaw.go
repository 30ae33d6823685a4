package model

import "math"

// PowerLaw is dN/dE = Prefactor · (E/Scale)^Index.
//
// Index follows the Fermi convention and is normally negative.
type PowerLaw struct {
	Prefactor float64
	Index     float64
	Scale     float64 // MeV, fixed
	Free      []string
}

var powerLawParams = []string{"Prefactor", "Index"}

func newPowerLaw(params map[string]float64, free []string) (Oracle, error) {
	v, err := lookup(params, "Prefactor", "Index", "Scale")
	if err != nil {
		return nil, err
	}
	if v[2] <= 0 {
		return nil, ErrInvalidScale
	}
	if err := checkFree(free, powerLawParams...); err != nil {
		return nil, err
	}
	return &PowerLaw{Prefactor: v[0], Index: v[1], Scale: v[2], Free: cloneNames(free)}, nil
}

// Value returns dN/dE at energy.
func (p *PowerLaw) Value(energy float64) float64 {
	return p.Prefactor * math.Pow(energy/p.Scale, p.Index)
}

// Gradient returns the partial derivatives for Prefactor and Index.
func (p *PowerLaw) Gradient(energy float64, params []string) ([]float64, error) {
	v := p.Value(energy)
	return gradient(params, func(name string) (float64, bool) {
		switch name {
		case "Prefactor":
			return math.Pow(energy/p.Scale, p.Index), true
		case "Index":
			return v * math.Log(energy/p.Scale), true
		}
		return 0, false
	})
}

// FreeParams returns Free, or Prefactor and Index when Free is empty.
func (p *PowerLaw) FreeParams() []string {
	if len(p.Free) == 0 {
		return cloneNames(powerLawParams)
	}
	return cloneNames(p.Free)
}
