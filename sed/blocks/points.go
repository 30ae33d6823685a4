package blocks

import "github.com/cwbudde/algo-sed/sed/bins"

// Input holds measurements ready for segmentation together with the bin
// index each one came from.
type Input struct {
	X     []float64
	Y     []float64
	Sigma []float64
	Bins  []int
}

// FromPoints converts aggregated SED points into segmentation input.
//
// Invalid bins are skipped. Upper limits become y = 0 with σ equal to the
// limit. Detections use σ = ½(errMinus + errPlus); detections without an
// error bar cannot be weighted and are skipped.
func FromPoints(p *bins.Points) Input {
	var in Input
	for i := 0; i < p.Len(); i++ {
		if !p.Valid[i] {
			continue
		}
		y, sigma := p.Flux[i], 0.5*(p.FluxErrMinus[i]+p.FluxErrPlus[i])
		if p.UpperLimit[i] {
			y, sigma = 0, p.Flux[i]+p.FluxErrPlus[i]
		}
		if !(sigma > 0) {
			continue
		}
		in.X = append(in.X, p.Energy[i])
		in.Y = append(in.Y, y)
		in.Sigma = append(in.Sigma, sigma)
		in.Bins = append(in.Bins, i)
	}
	return in
}

// SegmentPoints runs [Segment] on [FromPoints] of p.
func SegmentPoints(p *bins.Points, p0 float64) ([]Block, error) {
	in := FromPoints(p)
	return Segment(in.X, in.Y, in.Sigma, p0)
}
