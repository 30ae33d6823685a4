package sed

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-sed/internal/testutil"
)

func TestNewGridProperties(t *testing.T) {
	cases := []struct {
		emin, emax float64
		n          int
	}{
		{100, 3e5, 2000},
		{1, 10, 2},
		{50, 51, 7},
		{1e-3, 1e7, 300},
	}

	for _, tc := range cases {
		for _, build := range []func(float64, float64, int) (*Grid, error){NewGrid, NewExpGrid} {
			g, err := build(tc.emin, tc.emax, tc.n)
			if err != nil {
				t.Fatalf("grid(%g, %g, %d): %v", tc.emin, tc.emax, tc.n, err)
			}
			if g.Len() != tc.n {
				t.Fatalf("Len = %d, want %d", g.Len(), tc.n)
			}
			if g.Emin() != tc.emin || g.Emax() != tc.emax {
				t.Fatalf("end points = %g, %g", g.Emin(), g.Emax())
			}

			e := g.Energies()
			ratio := e[1] / e[0]
			for i := 1; i < len(e); i++ {
				if e[i] <= e[i-1] {
					t.Fatalf("not strictly increasing at %d: %g <= %g", i, e[i], e[i-1])
				}
				if r := e[i] / e[i-1]; math.Abs(r-ratio) > 1e-9*ratio {
					t.Fatalf("non-uniform log step at %d: %g vs %g", i, r, ratio)
				}
			}
		}
	}
}

func TestLogspaceAndExpStepAgree(t *testing.T) {
	a, err := NewGrid(100, 3e5, 2000)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewExpGrid(100, 3e5, 2000)
	if err != nil {
		t.Fatal(err)
	}
	d, err := testutil.MaxRelDiff(a.Energies(), b.Energies())
	if err != nil {
		t.Fatal(err)
	}
	if d > 1e-12 {
		t.Fatalf("logspace and exp-step grids differ by %g", d)
	}
	testutil.RequireSliceNearlyEqual(t, a.Energies(), testutil.LogSpaced(100, 3e5, 2000), 1e-11)
}

func TestGridInvalid(t *testing.T) {
	cases := []struct {
		emin, emax float64
		n          int
		want       error
	}{
		{0, 10, 5, ErrInvalidRange},
		{-1, 10, 5, ErrInvalidRange},
		{10, 10, 5, ErrInvalidRange},
		{10, 1, 5, ErrInvalidRange},
		{math.NaN(), 10, 5, ErrInvalidRange},
		{1, math.Inf(1), 5, ErrInvalidRange},
		{1, 10, 1, ErrInvalidGridSize},
	}
	for _, tc := range cases {
		if _, err := NewGrid(tc.emin, tc.emax, tc.n); !errors.Is(err, tc.want) {
			t.Fatalf("NewGrid(%g, %g, %d): got %v, want %v", tc.emin, tc.emax, tc.n, err, tc.want)
		}
		if _, err := NewExpGrid(tc.emin, tc.emax, tc.n); !errors.Is(err, tc.want) {
			t.Fatalf("NewExpGrid(%g, %g, %d): got %v, want %v", tc.emin, tc.emax, tc.n, err, tc.want)
		}
	}
}

func TestGridEnergiesIsCopy(t *testing.T) {
	g, _ := NewGrid(1, 100, 3)
	e := g.Energies()
	e[1] = -1
	if g.At(1) == -1 {
		t.Fatal("Energies exposed internal storage")
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Emin != 100 || p.Emax != 3e5 || p.N != 2000 {
		t.Fatalf("DefaultParams = %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	g, err := p.Grid()
	if err != nil || g.Len() != 2000 {
		t.Fatalf("Grid: %v", err)
	}
}
