// Package blocks segments a series of measurements into Bayesian blocks.
//
// Bayesian blocks (Scargle et al. 2013, ApJ 764, 167) find the optimal
// piecewise-constant representation of ordered data by dynamic programming
// over all change-point configurations, maximising a block fitness minus a
// per-block prior. This package implements the point-measures fitness used
// for flux points with Gaussian errors:
//
//	F(block) = b² / 4a,   a = ½·Σ 1/σ²,   b = -Σ y/σ²
//
// with the empirical prior ncp = 4 - ln(73.53 · p0 · N^-0.478), where p0 is
// the false-positive rate of a single change point.
//
// # Usage
//
//	blks, err := blocks.Segment(x, y, sigma, 0.5)
//	for _, b := range blks {
//	    fmt.Println(b.XLow, b.XHigh, b.Mean, b.Error)
//	}
//
// Upper limits enter as y = 0 with σ equal to the limit, which biases the
// segmentation conservatively; see [FromPoints].
package blocks
