package sed

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-sed/sed/model"
)

func benchComputer(b *testing.B, n int) *Computer {
	b.Helper()
	g, err := NewGrid(100, 3e5, n)
	if err != nil {
		b.Fatal(err)
	}
	lp := &model.LogParabola{Norm: 1e-11, Alpha: 2.1, Beta: 0.08, Eb: 1000}
	cov, err := NewCovariance([][]float64{
		{1e-26, 1e-15, 1e-16},
		{1e-15, 4e-4, 1e-5},
		{1e-16, 1e-5, 1e-4},
	})
	if err != nil {
		b.Fatal(err)
	}
	c, err := NewComputer(g, lp, cov)
	if err != nil {
		b.Fatal(err)
	}
	return c
}

func BenchmarkSED(b *testing.B) {
	for _, n := range []int{100, 2000, 20000} {
		c := benchComputer(b, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				c.SED()
			}
		})
	}
}

func BenchmarkSEDError(b *testing.B) {
	for _, n := range []int{100, 2000, 20000} {
		c := benchComputer(b, n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				if _, err := c.SEDError(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
