package blocks

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-sed/stats/weighted"
)

// Errors returned by Segment.
var (
	ErrLengthMismatch = errors.New("blocks: x, y and sigma must have equal length")
	ErrEmptyInput     = errors.New("blocks: no data points")
	ErrInvalidSigma   = errors.New("blocks: sigma must be positive and finite")
	ErrDuplicateX     = errors.New("blocks: repeated x values are not supported")
	ErrInvalidP0      = errors.New("blocks: p0 must be in (0, 1]")
	ErrNonFiniteInput = errors.New("blocks: x and y must be finite")
)

// DefaultP0 is the false-positive rate used when plotting SED points.
const DefaultP0 = 0.5

// Block is one range of constant level.
type Block struct {
	XLow  float64
	XHigh float64
	Mean  float64 // inverse-variance weighted mean of the member points
	Error float64 // standard error of Mean
	Count int     // member points
}

// Prior returns the per-block penalty for n points and false-positive
// rate p0.
func Prior(n int, p0 float64) float64 {
	return 4 - math.Log(73.53*p0*math.Pow(float64(n), -0.478))
}

type sample struct{ x, y, sigma float64 }

// Edges returns the optimal block edges for the measurements. The first and
// last edges are min(x) and max(x); interior edges lie halfway between
// neighbouring points.
func Edges(x, y, sigma []float64, p0 float64) ([]float64, error) {
	data, err := prepare(x, y, sigma, p0)
	if err != nil {
		return nil, err
	}
	return cellEdges(data, changePoints(data, p0)), nil
}

// Segment partitions the measurements into blocks and summarizes each one.
// Blocks are contiguous and ordered, and together span [min x, max x].
//
// Every point belongs to exactly one block and every block holds at least
// one point. Membership follows the change points of the optimal partition,
// so it is exact even when an interior edge rounds onto a neighbouring x.
// The edges of block k are the half-open range [XLow, XHigh); the last
// block is closed on the right.
func Segment(x, y, sigma []float64, p0 float64) ([]Block, error) {
	data, err := prepare(x, y, sigma, p0)
	if err != nil {
		return nil, err
	}
	cps := changePoints(data, p0)
	ed := cellEdges(data, cps)

	out := make([]Block, len(cps)-1)
	ys := make([]float64, 0, len(data))
	ss := make([]float64, 0, len(data))
	for k := range out {
		ys, ss = ys[:0], ss[:0]
		for _, d := range data[cps[k]:cps[k+1]] {
			ys = append(ys, d.y)
			ss = append(ss, d.sigma)
		}
		st := weighted.Calculate(ys, ss)
		out[k] = Block{XLow: ed[k], XHigh: ed[k+1], Mean: st.Mean, Error: st.Error, Count: st.Count}
	}
	return out, nil
}

// prepare validates the input and returns it sorted by x.
func prepare(x, y, sigma []float64, p0 float64) ([]sample, error) {
	if len(x) != len(y) || len(x) != len(sigma) {
		return nil, fmt.Errorf("%w: %d, %d, %d", ErrLengthMismatch, len(x), len(y), len(sigma))
	}
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if !(p0 > 0 && p0 <= 1) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidP0, p0)
	}

	data := make([]sample, len(x))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, fmt.Errorf("%w: point %d", ErrNonFiniteInput, i)
		}
		if !(sigma[i] > 0) || math.IsInf(sigma[i], 1) {
			return nil, fmt.Errorf("%w: sigma[%d] = %g", ErrInvalidSigma, i, sigma[i])
		}
		data[i] = sample{x: x[i], y: y[i], sigma: sigma[i]}
	}
	sort.Slice(data, func(a, b int) bool { return data[a].x < data[b].x })
	for i := 1; i < len(data); i++ {
		if data[i].x == data[i-1].x {
			return nil, fmt.Errorf("%w: x = %g", ErrDuplicateX, data[i].x)
		}
	}
	return data, nil
}

// changePoints runs the O(N²) dynamic program on sorted, validated data and
// returns the ascending block start indices, ending with len(data).
func changePoints(data []sample, p0 float64) []int {
	n := len(data)

	ncp := Prior(n, p0)
	best := make([]float64, n)
	last := make([]int, n)
	a := make([]float64, n)
	b := make([]float64, n)

	for r := 0; r < n; r++ {
		// a[k], b[k] accumulate cells k..r.
		w := 1 / (data[r].sigma * data[r].sigma)
		for k := 0; k <= r; k++ {
			if k == r {
				a[k], b[k] = 0, 0
			}
			a[k] += 0.5 * w
			b[k] -= data[r].y * w
		}

		iMax := 0
		vMax := math.Inf(-1)
		for k := 0; k <= r; k++ {
			v := b[k]*b[k]/(4*a[k]) - ncp
			if k > 0 {
				v += best[k-1]
			}
			if v > vMax {
				iMax, vMax = k, v
			}
		}
		last[r] = iMax
		best[r] = vMax
	}

	// Peel blocks off from the end.
	var cps []int
	for ind := n; ; {
		cps = append(cps, ind)
		if ind == 0 {
			break
		}
		ind = last[ind-1]
	}
	for i, j := 0, len(cps)-1; i < j; i, j = i+1, j-1 {
		cps[i], cps[j] = cps[j], cps[i]
	}
	return cps
}

// cellEdges maps change points to x: the first and last edges are min(x)
// and max(x), interior ones the midpoint before the block's first point.
func cellEdges(data []sample, cps []int) []float64 {
	n := len(data)
	out := make([]float64, len(cps))
	for i, cp := range cps {
		switch cp {
		case 0:
			out[i] = data[0].x
		case n:
			out[i] = data[n-1].x
		default:
			out[i] = 0.5 * (data[cp-1].x + data[cp].x)
		}
	}
	return out
}
