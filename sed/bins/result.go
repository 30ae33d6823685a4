package bins

import (
	"errors"
	"fmt"
)

// Errors reported for individual bins.
var (
	ErrMissingBin        = errors.New("bins: cannot read bin result")
	ErrMissingErrorInfo  = errors.New("bins: no error information for bin")
	ErrIncompleteResult  = errors.New("bins: incomplete bin result")
	ErrUnsupportedFormat = errors.New("bins: unsupported result file format")
	ErrMalformedTable    = errors.New("bins: malformed table")
)

// Result is the outcome of one energy-bin fit. Energies are in MeV and the
// prefactor in ph/cm²/s/MeV.
type Result struct {
	Scale float64
	Emin  float64
	Emax  float64
	Index float64

	Prefactor float64

	// UpperLimit is the integrated flux upper limit (ph/cm²/s) when
	// IsUpperLimit is set.
	UpperLimit   float64
	IsUpperLimit bool

	// DPrefactor is the parabolic (Gaussian) error on Prefactor.
	DPrefactor    float64
	HasDPrefactor bool

	// DPrefactorMinus and DPrefactorPlus are the MINOS errors.
	DPrefactorMinus float64
	DPrefactorPlus  float64
	HasMinos        bool
}

// Key names used in result files.
const (
	KeyScale      = "Scale"
	KeyEmin       = "Emin"
	KeyEmax       = "Emax"
	KeyIndex      = "Index"
	KeyPrefactor  = "Prefactor"
	KeyUlvalue    = "Ulvalue"
	KeyDPrefactor = "dPrefactor"
	KeyDPrefMinus = "dPrefactor-"
	KeyDPrefPlus  = "dPrefactor+"
)

// FromMap builds a Result from a key/value map as stored in result files.
// The presence of Ulvalue marks an upper limit; MINOS errors require both
// dPrefactor- and dPrefactor+.
func FromMap(m map[string]float64) (Result, error) {
	var r Result
	for _, k := range []string{KeyScale, KeyEmin, KeyEmax, KeyIndex} {
		if _, ok := m[k]; !ok {
			return Result{}, fmt.Errorf("%w: missing %s", ErrIncompleteResult, k)
		}
	}
	r.Scale, r.Emin, r.Emax, r.Index = m[KeyScale], m[KeyEmin], m[KeyEmax], m[KeyIndex]
	if !(r.Emin > 0) || r.Emax <= r.Emin {
		return Result{}, fmt.Errorf("%w: bin bounds [%g, %g]", ErrIncompleteResult, r.Emin, r.Emax)
	}

	if ul, ok := m[KeyUlvalue]; ok {
		r.UpperLimit, r.IsUpperLimit = ul, true
	} else if p, ok := m[KeyPrefactor]; ok {
		r.Prefactor = p
	} else {
		return Result{}, fmt.Errorf("%w: neither %s nor %s", ErrIncompleteResult, KeyPrefactor, KeyUlvalue)
	}

	if d, ok := m[KeyDPrefactor]; ok {
		r.DPrefactor, r.HasDPrefactor = d, true
	}
	minus, okm := m[KeyDPrefMinus]
	plus, okp := m[KeyDPrefPlus]
	if okm && okp {
		r.DPrefactorMinus, r.DPrefactorPlus, r.HasMinos = minus, plus, true
	}
	return r, nil
}
