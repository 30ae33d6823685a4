// Package bins merges per-energy-bin fit results into SED data points.
//
// Each energy bin of an analysis is fitted separately with a power law. A
// bin yields either a detection (prefactor with errors) or an upper limit
// on the integrated flux. [Aggregator] reads every bin through a [Reader],
// converts it to E²·dN/dE at a representative energy and returns parallel
// arrays ready for plotting or segmentation.
//
// Read failures never abort an aggregation: the bin is left zero-filled,
// marked invalid and reported as a [Warning]. Callers should consult
// [Points.Valid] rather than testing for zero flux.
package bins
