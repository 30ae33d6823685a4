// Package model provides spectral models that act as value/gradient
// oracles for SED computation.
//
// A fitted likelihood model is reduced to the narrow [Oracle] capability:
// the differential flux dN/dE at an energy, its partial derivatives with
// respect to the free parameters, and the ordered list of those free
// parameters. The SED engine in package sed is agnostic to which concrete
// model implements it.
//
// # Usage
//
//	pl := &model.PowerLaw{Prefactor: 1e-9, Index: -2.1, Scale: 1000}
//	pl.Free = []string{"Prefactor", "Index"}
//	v := pl.Value(300)
//	g, _ := pl.Gradient(300, pl.FreeParams())
//
// Models can also be built by name from a parameter map, which is how fit
// result files are turned into oracles:
//
//	o, err := model.New("LogParabola", map[string]float64{
//	    "norm": 1e-10, "alpha": 2, "beta": 0.1, "Eb": 300,
//	}, []string{"norm", "alpha", "beta"})
//
// Energies are in MeV and fluxes in ph/cm²/s/MeV throughout.
package model
