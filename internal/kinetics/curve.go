package kinetics

import (
	"math"
)

// QR is the activation energy over the gas constant for diffusional
// growth: Q = 27500 cal/mol, R = 1.987 cal/(mol·K)
const QR = 27500 / 1.987

// kelvin converts °C to K
const kelvin = 273.15

// Band is the open temperature interval (°C) in which a phase can form
type Band struct {
	Lower float64
	Upper float64
}

// Contains reports whether Lower < T < Upper
func (b Band) Contains(T float64) bool {
	return T > b.Lower && T < b.Upper
}

// Empty reports whether no temperature lies in the band
func (b Band) Empty() bool {
	return !(b.Upper > b.Lower)
}

// Curve is the isothermal transformation kinetics of one diffusional phase.
//
// Progress follows the Avrami law X(t) = 1 - exp(-(t/τ)^n) and the
// characteristic time has the C-curve form
//
//	τ(T) = F / (2^(a·G) · (Tu - T)^m · exp(-Q/RT))
//
// where Tu is the upper band limit (Ae3, Ae1 or Bs), F a composition factor
// and G the ASTM grain size.
type Curve struct {
	phase       Phase
	band        Band
	factor      float64 // composition factor F (s·K^m)
	grainFactor float64 // 2^(a·G)
	m           float64 // undercooling exponent
	n           float64 // Avrami exponent
}

// Phase returns the phase this curve describes
func (c *Curve) Phase() Phase { return c.phase }

// Band returns the validity band of the curve
func (c *Curve) Band() Band { return c.band }

// Exponent returns the Avrami exponent n
func (c *Curve) Exponent() float64 { return c.n }

// InBand reports whether the phase can form at T
func (c *Curve) InBand(T float64) bool { return c.band.Contains(T) }

// Tau returns the characteristic time τ(T) in seconds. ok is false outside
// the band or where τ is not a finite positive number.
func (c *Curve) Tau(T float64) (float64, bool) {
	if !c.band.Contains(T) {
		return 0, false
	}
	undercooling := c.band.Upper - T
	tau := c.factor / (c.grainFactor * math.Pow(undercooling, c.m) * math.Exp(-QR/(T+kelvin)))
	if math.IsNaN(tau) || math.IsInf(tau, 0) || tau <= 0 {
		return 0, false
	}
	return tau, true
}

// Rate returns 1/τ(T), or 0 where the phase does not form
func (c *Curve) Rate(T float64) float64 {
	tau, ok := c.Tau(T)
	if !ok {
		return 0
	}
	return 1 / tau
}

// TimeForFraction returns the isothermal hold time at T needed to reach
// progress f
func (c *Curve) TimeForFraction(T, f float64) (float64, bool) {
	tau, ok := c.Tau(T)
	if !ok {
		return 0, false
	}
	t := tau * NormalizedTime(f, c.n)
	if math.IsInf(t, 0) || math.IsNaN(t) {
		return 0, false
	}
	return t, true
}

// StartTime returns the isothermal transformation start time at T
func (c *Curve) StartTime(T float64) (float64, bool) {
	return c.TimeForFraction(T, StartFraction)
}

// FinishTime returns the isothermal transformation finish time at T
func (c *Curve) FinishTime(T float64) (float64, bool) {
	return c.TimeForFraction(T, FinishFraction)
}

// Fraction returns the isothermal progress after holding t seconds at T
func (c *Curve) Fraction(T, t float64) float64 {
	tau, ok := c.Tau(T)
	if !ok {
		return 0
	}
	return Progress(t/tau, c.n)
}
