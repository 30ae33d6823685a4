package sed

import "errors"

// Errors returned by SED computations.
var (
	ErrInvalidRange      = errors.New("sed: energy range must satisfy 0 < emin < emax")
	ErrInvalidGridSize   = errors.New("sed: grid needs at least 2 points")
	ErrDimensionMismatch = errors.New("sed: dimension mismatch")
	ErrDegenerateInput   = errors.New("sed: degenerate input")
	ErrNotSquare         = errors.New("sed: covariance matrix is not square")
	ErrNotSymmetric      = errors.New("sed: covariance matrix is not symmetric")
	ErrMalformedTable    = errors.New("sed: malformed table")
)
