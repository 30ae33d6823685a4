package sed

import "math"

// Grid is an immutable, log-uniformly spaced energy grid in MeV.
type Grid struct {
	energies []float64
}

// Params mirrors the sampling parameters of an SED plot.
type Params struct {
	Emin float64 // MeV
	Emax float64 // MeV
	N    int     // number of grid points
}

// DefaultParams returns the historical defaults: 100 MeV to 300 GeV sampled
// with 2000 points.
func DefaultParams() Params {
	return Params{Emin: 100, Emax: 3e5, N: 2000}
}

// Validate checks the energy bounds and point count.
func (p Params) Validate() error {
	if p.Emin <= 0 || p.Emax <= p.Emin || math.IsInf(p.Emax, 0) || math.IsNaN(p.Emin) || math.IsNaN(p.Emax) {
		return ErrInvalidRange
	}
	if p.N < 2 {
		return ErrInvalidGridSize
	}
	return nil
}

// Grid builds the logspace grid described by p.
func (p Params) Grid() (*Grid, error) {
	return NewGrid(p.Emin, p.Emax, p.N)
}

// NewGrid returns n points spaced uniformly in log10 between emin and emax:
//
//	E_i = 10^(log10(emin) + i·(log10(emax)-log10(emin))/(n-1))
//
// The end points are exactly emin and emax.
func NewGrid(emin, emax float64, n int) (*Grid, error) {
	err := Params{Emin: emin, Emax: emax, N: n}.Validate()
	if err != nil {
		return nil, err
	}

	lo := math.Log10(emin)
	step := (math.Log10(emax) - lo) / float64(n-1)
	e := make([]float64, n)
	for i := range e {
		e[i] = math.Pow(10, lo+step*float64(i))
	}
	e[0], e[n-1] = emin, emax

	return &Grid{energies: e}, nil
}

// NewExpGrid builds the same point set as [NewGrid] with an explicit
// natural-log step:
//
//	E_i = emin · exp(i · ln(emax/emin)/(n-1))
func NewExpGrid(emin, emax float64, n int) (*Grid, error) {
	err := Params{Emin: emin, Emax: emax, N: n}.Validate()
	if err != nil {
		return nil, err
	}

	step := math.Log(emax/emin) / float64(n-1)
	e := make([]float64, n)
	for i := range e {
		e[i] = emin * math.Exp(step*float64(i))
	}
	e[0], e[n-1] = emin, emax

	return &Grid{energies: e}, nil
}

// Len returns the number of grid points.
func (g *Grid) Len() int { return len(g.energies) }

// Emin returns the first energy.
func (g *Grid) Emin() float64 { return g.energies[0] }

// Emax returns the last energy.
func (g *Grid) Emax() float64 { return g.energies[len(g.energies)-1] }

// At returns the i-th energy.
func (g *Grid) At(i int) float64 { return g.energies[i] }

// Energies returns a copy of the grid energies.
func (g *Grid) Energies() []float64 {
	out := make([]float64, len(g.energies))
	copy(out, g.energies)
	return out
}
