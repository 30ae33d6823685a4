package testutil

import "math"

// LogSpaced returns n points log-uniformly spaced between lo and hi,
// computed independently of the packages under test.
func LogSpaced(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	ratio := math.Pow(hi/lo, 1/float64(n-1))
	v := lo
	for i := range out {
		out[i] = v
		v *= ratio
	}
	out[n-1] = hi
	return out
}

// PowerLawSED returns the closed-form E²·dN/dE of K·E^-gamma at each energy,
// multiplied by unit.
func PowerLawSED(energies []float64, k, gamma, unit float64) []float64 {
	out := make([]float64, len(energies))
	for i, e := range energies {
		out[i] = unit * k * math.Pow(e, 2-gamma)
	}
	return out
}

// Constant returns a slice of length n filled with value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
