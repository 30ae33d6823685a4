package sed

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-sed/sed/model"
)

// Butterfly returns the closed error contour of an SED curve. The upper
// branch SED·exp(Err/SED) runs forward in energy, the lower branch
// SED·exp(-Err/SED) runs backward, and the first upper point is repeated to
// close the contour. The result has 2·len(points)+1 vertices.
func Butterfly(points []Point) (energies, values []float64) {
	n := len(points)
	if n == 0 {
		return nil, nil
	}
	energies = make([]float64, 2*n+1)
	values = make([]float64, 2*n+1)
	for i, p := range points {
		energies[i] = p.Energy
		values[i] = p.Value * math.Exp(p.Error/p.Value)
	}
	for i := 0; i < n; i++ {
		p := points[n-1-i]
		energies[n+i] = p.Energy
		values[n+i] = p.Value * math.Exp(-p.Error/p.Value)
	}
	energies[2*n] = energies[0]
	values[2*n] = values[0]
	return energies, values
}

// UpperLimitCurve returns the SED of a power law with the given index whose
// integrated flux between the grid end points equals ulFlux:
//
//	MeVToErg · E² · Prefactor(ulFlux, index, Emin, Emax, E)
func UpperLimitCurve(grid *Grid, ulFlux, index float64) ([]float64, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrDegenerateInput)
	}
	if !(ulFlux > 0) {
		return nil, fmt.Errorf("%w: upper limit %g", ErrDegenerateInput, ulFlux)
	}
	out := make([]float64, grid.Len())
	for i := range out {
		e := grid.At(i)
		out[i] = MeVToErg * e * e * model.Prefactor(ulFlux, index, grid.Emin(), grid.Emax(), e)
	}
	return out, nil
}
