package counts

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-sed/internal/testutil"
)

func TestMergeSumsMatchingChannels(t *testing.T) {
	front := Spectrum{
		{Emin: 100, Emax: 300, Observed: 40, Model: map[string]float64{"Vela": 20, "galdiff": 15}},
		{Emin: 300, Emax: 1000, Observed: 10, Model: map[string]float64{"Vela": 6, "galdiff": 3}},
	}
	back := Spectrum{
		{Emin: 300, Emax: 1000, Observed: 6, Model: map[string]float64{"Vela": 4, "galdiff": 2}},
		{Emin: 100, Emax: 300, Observed: 24, Model: map[string]float64{"Vela": 10, "galdiff": 12}},
		{Emin: 1000, Emax: 3000, Observed: 0, Model: map[string]float64{"Vela": 1, "galdiff": 0.5}},
	}

	m, err := Merge("Vela", front, back)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.Len())
	}

	testutil.RequireSliceNearlyEqual(t, m.Emin, []float64{100, 300, 1000}, 0)
	testutil.RequireSliceNearlyEqual(t, m.Observed, []float64{64, 16, 0}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, m.ObservedErr, []float64{8, 4, 0}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, m.Source, []float64{30, 10, 1}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, m.Total, []float64{57, 15, 1.5}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, m.Other(), []float64{27, 5, 0.5}, 1e-15)

	c, hw := m.Energy(0)
	if c != 200 || hw != 100 {
		t.Fatalf("Energy(0) = %g, %g; want 200, 100", c, hw)
	}
}

func TestResiduals(t *testing.T) {
	m := &Merged{
		Emin:        []float64{1, 2, 3, 4},
		Emax:        []float64{2, 3, 4, 5},
		Observed:    []float64{12, 0, 5, 9},
		ObservedErr: []float64{math.Sqrt(12), 0, math.Sqrt(5), 3},
		Source:      []float64{5, 1, 0, 3},
		Total:       []float64{10, 4, 0, 9},
	}

	res, errs := m.Residuals()

	testutil.RequireSliceNearlyEqual(t, res, []float64{0.2, 0, 0, 0}, 1e-12)
	testutil.RequireNear(t, "err[0]", errs[0], math.Sqrt(12)/10, 1e-12)
	if errs[1] != 0 {
		t.Errorf("err[1] = %g, want 0 for empty channel", errs[1])
	}
	if errs[2] != 0 {
		t.Errorf("err[2] = %g, want 0 for zero model", errs[2])
	}
	testutil.RequireNear(t, "err[3]", errs[3], 1.0/3, 1e-12)
}

func TestMergeErrors(t *testing.T) {
	tests := []struct {
		name    string
		spectra []Spectrum
		wantErr error
	}{
		{"none", nil, ErrNoComponents},
		{"missing source", []Spectrum{{{Emin: 1, Emax: 2, Model: map[string]float64{"other": 1}}}}, ErrSourceNotFound},
		{"inverted range", []Spectrum{{{Emin: 2, Emax: 1, Model: map[string]float64{"Vela": 1}}}}, ErrInvalidChannel},
		{"negative counts", []Spectrum{{{Emin: 1, Emax: 2, Observed: -1, Model: map[string]float64{"Vela": 1}}}}, ErrInvalidChannel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge("Vela", tt.spectra...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	in := `
- - {emin: 100, emax: 300, observed: 40, model: {Vela: 20, galdiff: 15}}
  - {emin: 300, emax: 1000, observed: 10, model: {Vela: 6, galdiff: 3}}
- - {emin: 100, emax: 300, observed: 24, model: {Vela: 10, galdiff: 12}}
`
	spectra, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(spectra) != 2 || len(spectra[0]) != 2 || len(spectra[1]) != 1 {
		t.Fatalf("unexpected shape: %+v", spectra)
	}
	if spectra[0][1].Model["galdiff"] != 3 {
		t.Fatalf("galdiff = %g, want 3", spectra[0][1].Model["galdiff"])
	}

	if _, err := Decode(strings.NewReader("")); !errors.Is(err, ErrNoComponents) {
		t.Fatalf("empty input err = %v, want ErrNoComponents", err)
	}
}
