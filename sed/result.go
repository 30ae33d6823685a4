package sed

import (
	"io"
	"sync"

	"go.uber.org/zap"
)

// Result memoizes the SED curve, its errors and the decorrelation summary of
// one fitted source. The first accessor call computes everything; later
// calls return the cached values. A Result is immutable after construction.
type Result struct {
	comp   *Computer
	source string
	logger *zap.Logger

	once     sync.Once
	energies []float64
	sed      []float64
	errs     []float64
	dec      Decorrelation
	err      error
}

// Option configures a Result.
type Option func(*Result)

// WithLogger sets the logger used by [Result.Report].
func WithLogger(logger *zap.Logger) Option {
	return func(r *Result) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSource names the source the result belongs to.
func WithSource(name string) Option {
	return func(r *Result) {
		r.source = name
	}
}

// NewResult wraps comp.
func NewResult(comp *Computer, opts ...Option) *Result {
	r := &Result{comp: comp, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Result) compute() {
	r.energies, r.sed = r.comp.SED()
	r.errs, r.err = r.comp.SEDError()
	if r.err != nil {
		return
	}
	r.dec, r.err = FindDecorrelation(r.energies, r.sed, r.errs)
}

// Source returns the source name given with [WithSource].
func (r *Result) Source() string { return r.source }

// Decorrelation returns the memoized decorrelation summary.
func (r *Result) Decorrelation() (Decorrelation, error) {
	r.once.Do(r.compute)
	return r.dec, r.err
}

// Points returns the memoized SED curve with errors.
func (r *Result) Points() ([]Point, error) {
	r.once.Do(r.compute)
	if r.err != nil {
		return nil, r.err
	}
	out := make([]Point, len(r.energies))
	for i := range out {
		out[i] = Point{Energy: r.energies[i], Value: r.sed[i], Error: r.errs[i]}
	}
	return out, nil
}

// Report logs the decorrelation energy together with the differential flux
// and SED at that energy.
func (r *Result) Report() error {
	dec, err := r.Decorrelation()
	if err != nil {
		return err
	}
	r.logger.Info("decorrelation energy",
		zap.String("source", r.source),
		zap.Float64("energy_mev", dec.Energy))
	r.logger.Info("differential flux at decorrelation energy",
		zap.Float64("flux", dec.Flux),
		zap.Float64("flux_err", dec.FluxError),
		zap.String("unit", "ph/cm2/s/MeV"))
	r.logger.Info("SED at decorrelation energy",
		zap.Float64("sed", dec.SED),
		zap.Float64("sed_err", dec.SEDError),
		zap.String("unit", "erg/cm2/s"))
	return nil
}

// WriteTable writes the memoized curve with [WriteTable].
func (r *Result) WriteTable(w io.Writer) error {
	pts, err := r.Points()
	if err != nil {
		return err
	}
	return WriteTable(w, pts)
}
