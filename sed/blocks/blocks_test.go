package blocks

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-sed/internal/testutil"
)

func requireCoverage(t *testing.T, segs []Block, lo, hi float64) {
	t.Helper()
	if len(segs) == 0 {
		t.Fatal("no segments")
	}
	if segs[0].XLow != lo || segs[len(segs)-1].XHigh != hi {
		t.Fatalf("segments span [%g, %g], want [%g, %g]", segs[0].XLow, segs[len(segs)-1].XHigh, lo, hi)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].XLow != segs[i-1].XHigh {
			t.Fatalf("gap between segment %d and %d: %g vs %g", i-1, i, segs[i-1].XHigh, segs[i].XLow)
		}
		if segs[i].XLow >= segs[i].XHigh {
			t.Fatalf("segment %d is empty: [%g, %g]", i, segs[i].XLow, segs[i].XHigh)
		}
	}
}

func TestSegmentConstantIsSingleBlock(t *testing.T) {
	for _, n := range []int{1, 2, 5, 40} {
		x := testutil.LogSpaced(100, 1e5, max(n, 2))[:n]
		segs, err := Segment(x, testutil.Constant(3e-11, n), testutil.Constant(1e-12, n), DefaultP0)
		if err != nil {
			t.Fatal(err)
		}
		if len(segs) != 1 {
			t.Fatalf("n=%d: got %d segments, want 1", n, len(segs))
		}
		requireCoverage(t, segs, x[0], x[n-1])
		if segs[0].Count != n {
			t.Fatalf("n=%d: Count = %d", n, segs[0].Count)
		}
		testutil.RequireNear(t, "mean", segs[0].Mean, 3e-11, 1e-12)
		testutil.RequireNear(t, "error", segs[0].Error, 1e-12/math.Sqrt(float64(n)), 1e-12)
	}
}

func TestSegmentStep(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := []float64{1, 1, 1, 1, 1, 10, 10, 10, 10, 10}
	sigma := testutil.Constant(0.1, 10)

	segs, err := Segment(x, y, sigma, DefaultP0)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segs), segs)
	}
	requireCoverage(t, segs, 1, 10)
	if segs[0].XHigh != 5.5 {
		t.Fatalf("change point at %g, want 5.5", segs[0].XHigh)
	}
	testutil.RequireNear(t, "low mean", segs[0].Mean, 1, 1e-12)
	testutil.RequireNear(t, "high mean", segs[1].Mean, 10, 1e-12)
	testutil.RequireNear(t, "low error", segs[0].Error, 0.1/math.Sqrt(5), 1e-12)
	if segs[0].Count+segs[1].Count != 10 {
		t.Fatalf("points counted %d times, want 10", segs[0].Count+segs[1].Count)
	}
}

func TestSegmentUnsortedInput(t *testing.T) {
	x := []float64{10, 3, 7, 1, 5, 9, 2, 8, 4, 6}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 1
		if v > 5 {
			y[i] = 10
		}
	}
	segs, err := Segment(x, y, testutil.Constant(0.1, len(x)), DefaultP0)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 2 || segs[0].XHigh != 5.5 {
		t.Fatalf("unexpected segments %+v", segs)
	}
}

func TestSegmentMembershipHalfOpen(t *testing.T) {
	// Three clear levels; every point must land in exactly one segment.
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	y := []float64{0, 0, 0, 50, 50, 50, 0, 0, 0}
	segs, err := Segment(x, y, testutil.Constant(1, 9), DefaultP0)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	total := 0
	for _, s := range segs {
		total += s.Count
		if s.Count != 3 {
			t.Fatalf("segment %+v has %d points, want 3", s, s.Count)
		}
	}
	if total != len(x) {
		t.Fatalf("counted %d points, want %d", total, len(x))
	}
}

func TestSegmentAdjacentFloatsKeepEveryPoint(t *testing.T) {
	// The midpoint of two neighbouring floats rounds onto one of them.
	x := []float64{1, math.Nextafter(1, 2)}
	segs, err := Segment(x, []float64{0, 100}, []float64{1, 1}, DefaultP0)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for i, s := range segs {
		if s.Count == 0 || math.IsNaN(s.Mean) {
			t.Fatalf("segment %d is empty: %+v", i, s)
		}
		total += s.Count
	}
	if total != len(x) {
		t.Fatalf("counted %d points, want %d", total, len(x))
	}
	if segs[0].XLow != x[0] || segs[len(segs)-1].XHigh != x[1] {
		t.Fatalf("segments span [%g, %g]", segs[0].XLow, segs[len(segs)-1].XHigh)
	}
}

func TestEdgesMatchSegments(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{2, 2, 2, 8, 8, 8}
	s := testutil.Constant(0.2, 6)
	ed, err := Edges(x, y, s, DefaultP0)
	if err != nil {
		t.Fatal(err)
	}
	segs, _ := Segment(x, y, s, DefaultP0)
	if len(ed) != len(segs)+1 {
		t.Fatalf("%d edges for %d segments", len(ed), len(segs))
	}
	for i, seg := range segs {
		if seg.XLow != ed[i] || seg.XHigh != ed[i+1] {
			t.Fatalf("segment %d = [%g, %g], edges %g, %g", i, seg.XLow, seg.XHigh, ed[i], ed[i+1])
		}
	}
}

func TestPrior(t *testing.T) {
	want := 4 - math.Log(73.53*0.5*math.Pow(10, -0.478))
	if got := Prior(10, 0.5); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Prior = %g, want %g", got, want)
	}
	if Prior(100, 0.05) <= Prior(100, 0.5) {
		t.Fatal("smaller false-positive rate must penalize blocks more")
	}
}

func TestSegmentErrors(t *testing.T) {
	one := []float64{1}
	cases := []struct {
		name        string
		x, y, sigma []float64
		p0          float64
		want        error
	}{
		{"length", []float64{1, 2}, one, one, 0.5, ErrLengthMismatch},
		{"empty", nil, nil, nil, 0.5, ErrEmptyInput},
		{"p0 zero", one, one, one, 0, ErrInvalidP0},
		{"p0 large", one, one, one, 1.5, ErrInvalidP0},
		{"sigma zero", one, one, []float64{0}, 0.5, ErrInvalidSigma},
		{"sigma nan", one, one, []float64{math.NaN()}, 0.5, ErrInvalidSigma},
		{"y inf", one, []float64{math.Inf(1)}, one, 0.5, ErrNonFiniteInput},
		{"duplicate", []float64{1, 1}, []float64{1, 2}, []float64{1, 1}, 0.5, ErrDuplicateX},
	}
	for _, tc := range cases {
		if _, err := Segment(tc.x, tc.y, tc.sigma, tc.p0); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}
