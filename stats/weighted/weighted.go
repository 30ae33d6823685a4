// Package weighted provides inverse-variance weighted statistics for
// measurements with Gaussian uncertainties.
package weighted

import "math"

// Stats summarizes a set of measurements y_i ± σ_i.
type Stats struct {
	Count      int     // measurements with σ > 0
	SumWeights float64 // Σ 1/σ²
	Mean       float64 // Σ(y/σ²) / Σ(1/σ²)
	Error      float64 // 1 / sqrt(Σ 1/σ²)
	Chi2       float64 // Σ((y - Mean)/σ)²
}

// emptyStats is returned when no measurement carries weight.
func emptyStats() Stats {
	return Stats{Mean: math.NaN(), Error: math.Inf(1)}
}

// Calculate computes the weighted mean, its standard error and the χ² of
// the measurements around it. Pairs whose σ is not strictly positive and
// finite are ignored. Only the common length of values and sigmas is used.
func Calculate(values, sigmas []float64) Stats {
	n := min(len(values), len(sigmas))

	var s Stats
	var sumWY float64
	for i := 0; i < n; i++ {
		sg := sigmas[i]
		if !(sg > 0) || math.IsInf(sg, 1) {
			continue
		}
		w := 1 / (sg * sg)
		s.Count++
		s.SumWeights += w
		sumWY += w * values[i]
	}
	if s.Count == 0 {
		return emptyStats()
	}

	s.Mean = sumWY / s.SumWeights
	s.Error = 1 / math.Sqrt(s.SumWeights)
	for i := 0; i < n; i++ {
		sg := sigmas[i]
		if !(sg > 0) || math.IsInf(sg, 1) {
			continue
		}
		d := (values[i] - s.Mean) / sg
		s.Chi2 += d * d
	}
	return s
}

// Mean returns the inverse-variance weighted mean and its standard error.
func Mean(values, sigmas []float64) (mean, err float64) {
	s := Calculate(values, sigmas)
	return s.Mean, s.Error
}
