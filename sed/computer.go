package sed

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sed/sed/model"
)

// Point is one sample of an SED curve.
type Point struct {
	Energy float64 // MeV
	Value  float64 // E²·dN/dE, erg/cm²/s
	Error  float64 // erg/cm²/s
}

// Computer samples a spectral model on a grid and propagates the parameter
// covariance into SED errors. It holds no mutable state; every method
// recomputes from its inputs.
type Computer struct {
	grid   *Grid
	oracle model.Oracle
	cov    *Covariance
	params []string
}

// NewComputer binds a grid, an oracle and the covariance of the oracle's
// free parameters. The covariance dimension must equal the number of free
// parameters.
func NewComputer(grid *Grid, oracle model.Oracle, cov *Covariance) (*Computer, error) {
	if grid == nil || oracle == nil || cov == nil {
		return nil, fmt.Errorf("%w: nil grid, oracle or covariance", ErrDegenerateInput)
	}

	params := oracle.FreeParams()
	if len(params) != cov.Dim() {
		return nil, fmt.Errorf("%w: %d free parameters, covariance is %dx%d",
			ErrDimensionMismatch, len(params), cov.Dim(), cov.Dim())
	}

	return &Computer{grid: grid, oracle: oracle, cov: cov, params: params}, nil
}

// Grid returns the sampling grid.
func (c *Computer) Grid() *Grid { return c.grid }

// Flux returns the grid energies and dN/dE at each of them.
func (c *Computer) Flux() ([]float64, []float64) {
	e := c.grid.Energies()
	flux := make([]float64, len(e))
	for i, energy := range e {
		flux[i] = c.oracle.Value(energy)
	}
	return e, flux
}

// SED returns the grid energies and MeVToErg·E²·dN/dE at each of them.
func (c *Computer) SED() ([]float64, []float64) {
	e, sed := c.Flux()
	vecmath.MulBlockInPlace(sed, c.e2(e))
	return e, sed
}

// SEDError returns MeVToErg·E²·sqrt(gᵀ·C·g) at each grid energy.
func (c *Computer) SEDError() ([]float64, error) {
	e := c.grid.Energies()
	errs := make([]float64, len(e))
	for i, energy := range e {
		g, err := c.oracle.Gradient(energy, c.params)
		if err != nil {
			return nil, fmt.Errorf("sed: gradient at %g MeV: %w", energy, err)
		}
		variance, err := c.cov.QuadForm(g)
		if err != nil {
			return nil, err
		}
		errs[i] = math.Sqrt(variance)
	}
	vecmath.MulBlockInPlace(errs, c.e2(e))
	return errs, nil
}

// Points combines [Computer.SED] and [Computer.SEDError].
func (c *Computer) Points() ([]Point, error) {
	e, sed := c.SED()
	errs, err := c.SEDError()
	if err != nil {
		return nil, err
	}
	out := make([]Point, len(e))
	for i := range out {
		out[i] = Point{Energy: e[i], Value: sed[i], Error: errs[i]}
	}
	return out, nil
}

// e2 returns MeVToErg·E² for each energy.
func (c *Computer) e2(e []float64) []float64 {
	out := make([]float64, len(e))
	vecmath.MulBlock(out, e, e)
	vecmath.ScaleBlock(out, out, MeVToErg)
	return out
}
