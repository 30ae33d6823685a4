package model

import "math"

// LogParabola is dN/dE = norm · (E/Eb)^-(alpha + beta·ln(E/Eb)).
type LogParabola struct {
	Norm  float64
	Alpha float64
	Beta  float64
	Eb    float64 // MeV, fixed
	Free  []string
}

var logParabolaParams = []string{"norm", "alpha", "beta"}

func newLogParabola(params map[string]float64, free []string) (Oracle, error) {
	v, err := lookup(params, "norm", "alpha", "beta", "Eb")
	if err != nil {
		return nil, err
	}
	if v[3] <= 0 {
		return nil, ErrInvalidScale
	}
	if err := checkFree(free, logParabolaParams...); err != nil {
		return nil, err
	}
	return &LogParabola{Norm: v[0], Alpha: v[1], Beta: v[2], Eb: v[3], Free: cloneNames(free)}, nil
}

// Value returns dN/dE at energy.
func (l *LogParabola) Value(energy float64) float64 {
	x := math.Log(energy / l.Eb)
	return l.Norm * math.Exp(-(l.Alpha+l.Beta*x)*x)
}

// Gradient returns the partial derivatives for norm, alpha and beta.
func (l *LogParabola) Gradient(energy float64, params []string) ([]float64, error) {
	x := math.Log(energy / l.Eb)
	v := l.Value(energy)
	return gradient(params, func(name string) (float64, bool) {
		switch name {
		case "norm":
			return math.Exp(-(l.Alpha + l.Beta*x) * x), true
		case "alpha":
			return -v * x, true
		case "beta":
			return -v * x * x, true
		}
		return 0, false
	})
}

// FreeParams returns Free, or norm, alpha and beta when Free is empty.
func (l *LogParabola) FreeParams() []string {
	if len(l.Free) == 0 {
		return cloneNames(logParabolaParams)
	}
	return cloneNames(l.Free)
}
