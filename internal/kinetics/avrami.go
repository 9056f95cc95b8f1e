package kinetics

import "math"

// Transformation start and finish are reported at 1% and 99% progress
const (
	StartFraction  = 0.01
	FinishFraction = 0.99
)

// Fractions are kept strictly inside (0, 1) before the Avrami law is
// inverted, otherwise ln(1 - f) diverges.
const (
	minFraction = 1e-9
	maxFraction = 1 - 1e-9
)

func clampFraction(f float64) float64 {
	if math.IsNaN(f) || f < minFraction {
		return minFraction
	}
	if f > maxFraction {
		return maxFraction
	}
	return f
}

// NormalizedTime inverts X = 1 - exp(-s^n): it returns the time, in units of
// the characteristic time τ, needed to reach progress f.
func NormalizedTime(f, n float64) float64 {
	return math.Pow(-math.Log(1-clampFraction(f)), 1/n)
}

// Progress evaluates X = 1 - exp(-s^n) for normalised time s = t/τ
func Progress(s, n float64) float64 {
	if s <= 0 || math.IsNaN(s) {
		return 0
	}
	return -math.Expm1(-math.Pow(s, n))
}
