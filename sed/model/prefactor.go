package model

import "math"

// Prefactor converts an integrated flux between emin and emax into the
// differential flux dN/dE at escale of a power law with the given index.
//
// The sign of index is ignored, so both Fermi (-2) and photon-index (2)
// conventions give the same result:
//
//	dN/dE(escale) = flux · (1-Γ) · escale^-Γ / (emax^(1-Γ) - emin^(1-Γ))
//
// For Γ = 1 the logarithmic limit flux / (escale · ln(emax/emin)) is used.
func Prefactor(flux, index, emin, emax, escale float64) float64 {
	g := math.Abs(index)
	if g == 1 {
		return flux / (escale * math.Log(emax/emin))
	}
	denom := math.Pow(emax, 1-g) - math.Pow(emin, 1-g)
	return flux * (1 - g) * math.Pow(escale, -g) / denom
}
