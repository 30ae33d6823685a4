// Package sed computes spectral energy distributions from a fitted spectral
// model and its parameter covariance matrix.
//
// The SED of a source is E²·dN/dE, expressed in erg/cm²/s. A [Computer]
// samples a [model.Oracle] on a log-spaced [Grid] (energies in MeV) and
// propagates the covariance of the free parameters into a pointwise error:
//
//	σ(E) = MeVToErg · E² · sqrt(gᵀ · C · g),   g_k = ∂(dN/dE)/∂p_k
//
// [FindDecorrelation] locates the energy where the relative error is
// smallest, and [Result] memoizes the arrays and decorrelation summary of a
// fit.
//
// # Usage
//
//	grid, _ := sed.NewGrid(100, 3e5, 2000)
//	comp, _ := sed.NewComputer(grid, oracle, cov)
//	res := sed.NewResult(comp, sed.WithLogger(logger))
//	dec, _ := res.Decorrelation()
//	_ = res.WriteTable(f)
//
// The text table written by [WriteTable] keeps the historical column layout
// (energy, E²dN/dE, error) and fixed-width scientific notation so existing
// tooling can parse it.
package sed
