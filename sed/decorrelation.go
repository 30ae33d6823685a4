package sed

import (
	"fmt"
	"math"
)

// Decorrelation describes the SED at the energy of minimum relative error.
type Decorrelation struct {
	Index     int     // grid index
	Energy    float64 // MeV
	Flux      float64 // dN/dE, ph/cm²/s/MeV
	FluxError float64 // ph/cm²/s/MeV
	SED       float64 // erg/cm²/s
	SEDError  float64 // erg/cm²/s
}

// FindDecorrelation returns the point where err[i]/sed[i] is smallest. Ties
// resolve to the lowest index. Every SED value must be strictly positive.
func FindDecorrelation(energies, sed, errs []float64) (Decorrelation, error) {
	n := len(energies)
	if len(sed) != n || len(errs) != n {
		return Decorrelation{}, fmt.Errorf("%w: %d energies, %d SED values, %d errors",
			ErrDimensionMismatch, n, len(sed), len(errs))
	}
	if n == 0 {
		return Decorrelation{}, fmt.Errorf("%w: empty SED", ErrDegenerateInput)
	}

	best := -1
	bestRatio := 0.0
	for i := range sed {
		if !(sed[i] > 0) {
			return Decorrelation{}, fmt.Errorf("%w: SED[%d] = %g", ErrDegenerateInput, i, sed[i])
		}
		r := errs[i] / sed[i]
		if best < 0 || r < bestRatio || (math.IsNaN(bestRatio) && !math.IsNaN(r)) {
			best, bestRatio = i, r
		}
	}

	e2 := energies[best] * energies[best]
	return Decorrelation{
		Index:     best,
		Energy:    energies[best],
		Flux:      sed[best] / e2 * ErgToMeV,
		FluxError: errs[best] / e2 * ErgToMeV,
		SED:       sed[best],
		SEDError:  errs[best],
	}, nil
}
