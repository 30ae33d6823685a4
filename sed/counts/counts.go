// Package counts merges per-component counts spectra of a likelihood fit
// and computes fractional residuals of the data against the summed model.
package counts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

// Errors returned by Merge and Decode.
var (
	ErrNoComponents   = errors.New("counts: no counts spectra")
	ErrSourceNotFound = errors.New("counts: source not in model counts")
	ErrInvalidChannel = errors.New("counts: invalid channel")
)

// Channel is one energy channel of a counts spectrum. Model holds the
// predicted counts of every model component, keyed by source name.
type Channel struct {
	Emin     float64            `yaml:"emin"` // MeV
	Emax     float64            `yaml:"emax"` // MeV
	Observed float64            `yaml:"observed"`
	Model    map[string]float64 `yaml:"model"`
}

// Spectrum is the counts spectrum of one likelihood component.
type Spectrum []Channel

// Merged is the channel-wise sum of several counts spectra. Channels with
// identical (Emin, Emax) are summed; order is first appearance.
type Merged struct {
	Emin        []float64
	Emax        []float64
	Observed    []float64
	ObservedErr []float64 // sqrt(Observed)
	Source      []float64 // model counts of the selected source
	Total       []float64 // model counts of all sources
}

type channelKey struct{ lo, hi float64 }

// Merge sums the spectra channel by channel, tracking the model counts of
// source separately from the total.
func Merge(source string, spectra ...Spectrum) (*Merged, error) {
	if len(spectra) == 0 {
		return nil, ErrNoComponents
	}

	m := &Merged{}
	index := make(map[channelKey]int)

	for c, spec := range spectra {
		for j, ch := range spec {
			if err := ch.validate(); err != nil {
				return nil, fmt.Errorf("component %d channel %d: %w", c, j, err)
			}
			src, ok := ch.Model[source]
			if !ok {
				return nil, fmt.Errorf("%w: %q (component %d channel %d)", ErrSourceNotFound, source, c, j)
			}
			total := ch.total()

			key := channelKey{ch.Emin, ch.Emax}
			k, seen := index[key]
			if !seen {
				k = len(m.Emin)
				index[key] = k
				m.Emin = append(m.Emin, ch.Emin)
				m.Emax = append(m.Emax, ch.Emax)
				m.Observed = append(m.Observed, 0)
				m.ObservedErr = append(m.ObservedErr, 0)
				m.Source = append(m.Source, 0)
				m.Total = append(m.Total, 0)
			}
			m.Observed[k] += ch.Observed
			m.ObservedErr[k] = math.Sqrt(m.Observed[k])
			m.Source[k] += src
			m.Total[k] += total
		}
	}
	return m, nil
}

// total sums the model counts in name order so merges are reproducible.
func (ch Channel) total() float64 {
	names := make([]string, 0, len(ch.Model))
	for name := range ch.Model {
		names = append(names, name)
	}
	sort.Strings(names)
	sum := 0.0
	for _, name := range names {
		sum += ch.Model[name]
	}
	return sum
}

func (ch Channel) validate() error {
	switch {
	case !(ch.Emin > 0) || !(ch.Emax > ch.Emin):
		return fmt.Errorf("%w: energy range [%g, %g]", ErrInvalidChannel, ch.Emin, ch.Emax)
	case !(ch.Observed >= 0) || math.IsInf(ch.Observed, 0):
		return fmt.Errorf("%w: observed counts %g", ErrInvalidChannel, ch.Observed)
	}
	return nil
}

// Len returns the number of merged channels.
func (m *Merged) Len() int { return len(m.Emin) }

// Energy returns the channel centre and half width.
func (m *Merged) Energy(i int) (center, halfWidth float64) {
	return (m.Emax[i] + m.Emin[i]) / 2, (m.Emax[i] - m.Emin[i]) / 2
}

// Other returns the model counts of all sources except the selected one.
func (m *Merged) Other() []float64 {
	out := make([]float64, m.Len())
	for i := range out {
		out[i] = m.Total[i] - m.Source[i]
	}
	return out
}

// Residuals returns (observed-total)/total and its error observed_err/total.
// Channels with zero total model counts get zero for both, and a residual
// of exactly -1 (no observed counts) is reported as zero.
func (m *Merged) Residuals() (residual, errs []float64) {
	residual = make([]float64, m.Len())
	errs = make([]float64, m.Len())
	for i := range residual {
		t := m.Total[i]
		if t == 0 {
			continue
		}
		residual[i] = (m.Observed[i] - t) / t
		errs[i] = m.ObservedErr[i] / t
		if residual[i] == -1 {
			residual[i] = 0
		}
	}
	return residual, errs
}

// Decode reads a YAML list of counts spectra, one per likelihood component.
func Decode(r io.Reader) ([]Spectrum, error) {
	var spectra []Spectrum
	if err := yaml.NewDecoder(r).Decode(&spectra); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoComponents
		}
		return nil, fmt.Errorf("counts: decode: %w", err)
	}
	if len(spectra) == 0 {
		return nil, ErrNoComponents
	}
	return spectra, nil
}
