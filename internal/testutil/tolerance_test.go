package testutil

import (
	"math"
	"testing"
)

func TestMaxRelDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 4.0}
	b := []float64{1.0, 2.2, 4.0}

	d, err := MaxRelDiff(a, b)
	if err != nil {
		t.Fatalf("MaxRelDiff error: %v", err)
	}

	if math.Abs(d-0.2/2.2) > 1e-15 {
		t.Fatalf("MaxRelDiff = %v, want %v", d, 0.2/2.2)
	}
}

func TestMaxRelDiffLengthMismatch(t *testing.T) {
	_, err := MaxRelDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestRelDiffZero(t *testing.T) {
	if d := RelDiff(0, 0); d != 0 {
		t.Fatalf("RelDiff(0, 0) = %v, want 0", d)
	}
}

func TestLogSpacedEndpoints(t *testing.T) {
	e := LogSpaced(100, 3e5, 50)
	if e[0] != 100 || e[len(e)-1] != 3e5 {
		t.Fatalf("endpoints = %v, %v", e[0], e[len(e)-1])
	}
	RequireFinite(t, e)
}

func TestPowerLawSED(t *testing.T) {
	got := PowerLawSED([]float64{1, 10}, 2, 2, 1)
	RequireSliceNearlyEqual(t, got, []float64{2, 2}, 1e-15)
}
