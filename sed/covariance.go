package sed

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// symmetryTol is the relative tolerance used when checking C[i][j] == C[j][i].
const symmetryTol = 1e-8

// Covariance is a square, symmetric parameter covariance matrix stored
// row-major. Positive semi-definiteness is not checked; an indefinite matrix
// can yield a negative variance and therefore a NaN error.
type Covariance struct {
	n    int
	data []float64
}

// NewCovariance copies rows into a Covariance.
func NewCovariance(rows [][]float64) (*Covariance, error) {
	n := len(rows)
	data := make([]float64, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), n)
		}
		copy(data[i*n:], row)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := data[i*n+j], data[j*n+i]
			scale := math.Max(math.Abs(a), math.Abs(b))
			if math.Abs(a-b) > symmetryTol*scale {
				return nil, fmt.Errorf("%w: C[%d][%d]=%g, C[%d][%d]=%g", ErrNotSymmetric, i, j, a, j, i, b)
			}
		}
	}

	return &Covariance{n: n, data: data}, nil
}

// Diagonal returns a diagonal covariance with the given variances.
func Diagonal(variances ...float64) *Covariance {
	n := len(variances)
	data := make([]float64, n*n)
	for i, v := range variances {
		data[i*n+i] = v
	}
	return &Covariance{n: n, data: data}
}

// Dim returns the matrix dimension.
func (c *Covariance) Dim() int { return c.n }

// At returns C[i][j].
func (c *Covariance) At(i, j int) float64 { return c.data[i*c.n+j] }

// QuadForm returns gᵀ·C·g.
func (c *Covariance) QuadForm(g []float64) (float64, error) {
	if len(g) != c.n {
		return 0, fmt.Errorf("%w: gradient has %d entries, covariance is %dx%d", ErrDimensionMismatch, len(g), c.n, c.n)
	}

	cg := make([]float64, c.n)
	for i := range cg {
		cg[i] = vecmath.DotProduct(c.data[i*c.n:(i+1)*c.n], g)
	}

	return vecmath.DotProduct(g, cg), nil
}
