package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RelDiff returns |a-b| / max(|a|, |b|), or 0 when both are zero.
func RelDiff(a, b float64) float64 {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return 0
	}
	return math.Abs(a-b) / scale
}

// RequireNear fails t if got and want differ by more than rel relative tolerance.
func RequireNear(t *testing.T, name string, got, want, rel float64) {
	t.Helper()
	if d := RelDiff(got, want); d > rel || math.IsNaN(d) {
		t.Fatalf("%s: got %.12g, want %.12g (rel diff %.3g > %.3g)", name, got, want, d, rel)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds rel relative tolerance.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, rel float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := RelDiff(got[i], want[i]); d > rel || math.IsNaN(d) {
			t.Fatalf("index %d: got %v, want %v (rel diff %v > %v)", i, got[i], want[i], d, rel)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxRelDiff returns the maximum relative difference between two slices.
// Returns an error if the slices differ in length.
func MaxRelDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := RelDiff(a[i], b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
