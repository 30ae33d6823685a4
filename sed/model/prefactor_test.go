package model

import (
	"math"
	"testing"
)

func TestPrefactorHandComputed(t *testing.T) {
	// Γ=2 between 100 and 1000 MeV: 1e-7·(-1)·100^-2 / (1e-3 - 1e-2).
	got := Prefactor(1e-7, -2, 100, 1000, 100)
	want := 1e-7 / 0.009 / 1e4
	if math.Abs(got-want) > 1e-12*want {
		t.Fatalf("Prefactor = %g, want %g", got, want)
	}
}

func TestPrefactorIndexSignIgnored(t *testing.T) {
	a := Prefactor(3e-8, -2.4, 300, 3000, 1000)
	b := Prefactor(3e-8, 2.4, 300, 3000, 1000)
	if a != b {
		t.Fatalf("sign of index changed result: %g vs %g", a, b)
	}
}

func TestPrefactorIntegratesBackToFlux(t *testing.T) {
	const (
		flux   = 4e-8
		gamma  = 2.7
		emin   = 1000.0
		emax   = 10000.0
		escale = 3162.0
	)
	k := Prefactor(flux, gamma, emin, emax, escale)
	integral := k * math.Pow(escale, gamma) * (math.Pow(emax, 1-gamma) - math.Pow(emin, 1-gamma)) / (1 - gamma)
	if math.Abs(integral-flux) > 1e-12*flux {
		t.Fatalf("integral = %g, want %g", integral, flux)
	}
}

func TestPrefactorUnitIndex(t *testing.T) {
	got := Prefactor(1e-7, 1, 100, 1000, 200)
	want := 1e-7 / (200 * math.Log(10))
	if math.Abs(got-want) > 1e-12*want {
		t.Fatalf("Prefactor(Γ=1) = %g, want %g", got, want)
	}
}
