package model

import "math"

// PLSuperExpCutoff is
//
//	dN/dE = Prefactor · (E/Scale)^Index1 · exp(-(E/Cutoff)^Index2)
type PLSuperExpCutoff struct {
	Prefactor float64
	Index1    float64
	Cutoff    float64
	Index2    float64
	Scale     float64 // MeV, fixed
	Free      []string
}

var cutoffParams = []string{"Prefactor", "Index1", "Cutoff", "Index2"}

func newPLSuperExpCutoff(params map[string]float64, free []string) (Oracle, error) {
	v, err := lookup(params, "Prefactor", "Index1", "Cutoff", "Index2", "Scale")
	if err != nil {
		return nil, err
	}
	if v[2] <= 0 || v[4] <= 0 {
		return nil, ErrInvalidScale
	}
	if err := checkFree(free, cutoffParams...); err != nil {
		return nil, err
	}
	return &PLSuperExpCutoff{
		Prefactor: v[0], Index1: v[1], Cutoff: v[2], Index2: v[3], Scale: v[4],
		Free: cloneNames(free),
	}, nil
}

// Value returns dN/dE at energy.
func (c *PLSuperExpCutoff) Value(energy float64) float64 {
	return c.Prefactor * math.Pow(energy/c.Scale, c.Index1) * math.Exp(-math.Pow(energy/c.Cutoff, c.Index2))
}

// Gradient returns the partial derivatives for Prefactor, Index1, Cutoff
// and Index2.
func (c *PLSuperExpCutoff) Gradient(energy float64, params []string) ([]float64, error) {
	v := c.Value(energy)
	r := energy / c.Cutoff
	rk := math.Pow(r, c.Index2)
	return gradient(params, func(name string) (float64, bool) {
		switch name {
		case "Prefactor":
			return math.Pow(energy/c.Scale, c.Index1) * math.Exp(-rk), true
		case "Index1":
			return v * math.Log(energy/c.Scale), true
		case "Cutoff":
			return v * c.Index2 * rk / c.Cutoff, true
		case "Index2":
			return -v * rk * math.Log(r), true
		}
		return 0, false
	})
}

// FreeParams returns Free, or Prefactor, Index1 and Cutoff when Free is
// empty. Index2 is conventionally held fixed.
func (c *PLSuperExpCutoff) FreeParams() []string {
	if len(c.Free) == 0 {
		return cloneNames(cutoffParams[:3])
	}
	return cloneNames(c.Free)
}
