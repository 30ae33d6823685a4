package bins

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-sed/sed"
	"github.com/cwbudde/algo-sed/sed/model"
)

// ErrorKind tells where the flux error of a bin came from.
type ErrorKind int

const (
	// ErrorNone marks bins without an error bar: upper limits and bins
	// that could not be read.
	ErrorNone ErrorKind = iota
	// ErrorAsymmetric marks MINOS errors.
	ErrorAsymmetric
	// ErrorSymmetric marks the Gaussian dPrefactor error.
	ErrorSymmetric
	// ErrorMissing marks a detection without any error information. The
	// error arrays hold zero for such bins.
	ErrorMissing
)

// String returns a short name for k.
func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorAsymmetric:
		return "minos"
	case ErrorSymmetric:
		return "gaussian"
	case ErrorMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Warning records a recovered per-bin problem.
type Warning struct {
	Bin int
	ID  string
	Err error
}

func (w Warning) Error() string {
	return fmt.Sprintf("bin %d (%s): %v", w.Bin, w.ID, w.Err)
}

// Unwrap returns the underlying error.
func (w Warning) Unwrap() error { return w.Err }

// Points holds the aggregated bins as parallel arrays indexed by bin.
// Energies are in MeV and fluxes in erg/cm²/s (E²·dN/dE).
type Points struct {
	Energy         []float64
	EnergyErrMinus []float64
	EnergyErrPlus  []float64
	Flux           []float64
	FluxErrMinus   []float64
	FluxErrPlus    []float64
	UpperLimit     []bool

	// Valid is false for bins whose result could not be read; every other
	// array holds zero at such indices.
	Valid     []bool
	ErrorKind []ErrorKind
	// GaussianError is MeVToErg·dPrefactor·E², zero when absent.
	GaussianError []float64
	Results       []Result

	Warnings []Warning
}

func newPoints(n int) *Points {
	return &Points{
		Energy:         make([]float64, n),
		EnergyErrMinus: make([]float64, n),
		EnergyErrPlus:  make([]float64, n),
		Flux:           make([]float64, n),
		FluxErrMinus:   make([]float64, n),
		FluxErrPlus:    make([]float64, n),
		UpperLimit:     make([]bool, n),
		Valid:          make([]bool, n),
		ErrorKind:      make([]ErrorKind, n),
		GaussianError:  make([]float64, n),
		Results:        make([]Result, n),
	}
}

// Len returns the number of bins.
func (p *Points) Len() int { return len(p.Energy) }

// Aggregator reads bin results and converts them to SED points.
type Aggregator struct {
	reader      Reader
	logger      *zap.Logger
	concurrency int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger warnings are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithConcurrency sets how many bins are read at once. The default of 1
// reads bins sequentially. Output order never depends on it.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewAggregator creates an Aggregator reading through r.
func NewAggregator(r Reader, opts ...Option) *Aggregator {
	a := &Aggregator{reader: r, logger: zap.NewNop(), concurrency: 1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate reads one result per id and returns arrays of len(ids). A bin
// that fails to read is skipped with a warning; only context cancellation
// aborts the aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, ids []string) (*Points, error) {
	pts := newPoints(len(ids))
	warnings := make([][]Warning, len(ids))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := a.reader.Read(ctx, id)
			if err != nil {
				warnings[i] = append(warnings[i], Warning{Bin: i, ID: id, Err: fmt.Errorf("%w: %w", ErrMissingBin, err)})
				return nil
			}
			if pts.fill(i, res) == ErrorMissing {
				warnings[i] = append(warnings[i], Warning{Bin: i, ID: id, Err: ErrMissingErrorInfo})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, ws := range warnings {
		for _, w := range ws {
			a.logger.Warn("energy bin skipped or incomplete",
				zap.Int("bin", w.Bin), zap.String("id", w.ID), zap.Error(w.Err))
			pts.Warnings = append(pts.Warnings, w)
		}
	}
	for i := range ids {
		if !pts.Valid[i] {
			continue
		}
		a.logger.Debug("energy bin result",
			zap.Int("bin", i),
			zap.Float64("energy_mev", pts.Energy[i]),
			zap.Float64("sed", pts.Flux[i]),
			zap.Float64("sed_err_minus", pts.FluxErrMinus[i]),
			zap.Float64("sed_err_plus", pts.FluxErrPlus[i]),
			zap.Bool("upper_limit", pts.UpperLimit[i]))
	}

	return pts, nil
}

// RepresentativeEnergy returns the scale energy of a bin, or the geometric
// mean of its bounds when the fit pinned the scale to either bound.
func RepresentativeEnergy(r Result) float64 {
	if r.Scale == r.Emin || r.Scale == r.Emax {
		return math.Sqrt(r.Emin * r.Emax)
	}
	return r.Scale
}

// fill writes bin i from r and returns the error kind used.
func (p *Points) fill(i int, r Result) ErrorKind {
	e := RepresentativeEnergy(r)
	e2 := sed.MeVToErg * e * e

	p.Valid[i] = true
	p.Results[i] = r
	p.Energy[i] = e
	p.EnergyErrMinus[i] = e - r.Emin
	p.EnergyErrPlus[i] = r.Emax - e
	if r.HasDPrefactor {
		p.GaussianError[i] = e2 * r.DPrefactor
	}

	if r.IsUpperLimit {
		p.Flux[i] = e2 * model.Prefactor(r.UpperLimit, r.Index, r.Emin, r.Emax, e)
		p.UpperLimit[i] = true
		p.ErrorKind[i] = ErrorNone
		return ErrorNone
	}

	p.Flux[i] = e2 * r.Prefactor
	switch {
	case r.HasMinos && r.DPrefactorMinus != 0 && r.DPrefactorPlus != 0:
		p.FluxErrMinus[i] = e2 * math.Abs(r.DPrefactorMinus)
		p.FluxErrPlus[i] = e2 * r.DPrefactorPlus
		p.ErrorKind[i] = ErrorAsymmetric
	case r.HasDPrefactor && r.DPrefactor != 0:
		p.FluxErrMinus[i] = e2 * r.DPrefactor
		p.FluxErrPlus[i] = e2 * r.DPrefactor
		p.ErrorKind[i] = ErrorSymmetric
	default:
		p.ErrorKind[i] = ErrorMissing
	}
	return p.ErrorKind[i]
}
