package hardness

import (
	"math"

	"github.com/alexiusacademia/steelcct/internal/chem"
)

// MinRate is the floor applied to the cooling rate (°C/h) before taking
// its logarithm
const MinRate = 1.0

// ReferenceTemperature is where the characteristic cooling rate of a
// thermal cycle is measured (°C)
const ReferenceTemperature = 700.0

// SecondsPerHour converts °C/s cooling rates into the °C/h of the regressions
const SecondsPerHour = 3600.0

// Fractions is the phase mixture the hardness is estimated from
type Fractions struct {
	Ferrite    float64
	Pearlite   float64
	Bainite    float64
	Martensite float64
	Austenite  float64
}

// Estimate holds the per-phase hardness and the mixture hardness (HV)
type Estimate struct {
	Martensite      float64
	Bainite         float64
	FerritePearlite float64
	Total           float64
}

// logRate returns log10 of the cooling rate in °C/h, floored at MinRate
func logRate(rate float64) float64 {
	vr := math.Abs(rate) * SecondsPerHour
	if math.IsNaN(vr) || vr < MinRate {
		vr = MinRate
	}
	return math.Log10(vr)
}

// MartensiteHV - Maynier et al. (1978), rate in °C/s
func MartensiteHV(c chem.Composition, rate float64) float64 {
	return 127 + 949*c.C + 27*c.Si + 11*c.Mn + 8*c.Ni + 16*c.Cr + 21*logRate(rate)
}

// BainiteHV - Maynier et al. (1978), rate in °C/s
func BainiteHV(c chem.Composition, rate float64) float64 {
	return -323 + 185*c.C + 330*c.Si + 153*c.Mn + 65*c.Ni + 144*c.Cr + 191*c.Mo +
		(89+53*c.C-55*c.Si-22*c.Mn-10*c.Ni-20*c.Cr-33*c.Mo)*logRate(rate)
}

// FerritePearliteHV - Maynier et al. (1978), rate in °C/s
func FerritePearliteHV(c chem.Composition, rate float64) float64 {
	return 42 + 223*c.C + 53*c.Si + 30*c.Mn + 12.6*c.Ni + 7*c.Cr + 19*c.Mo +
		(10-19*c.Si+4*c.Ni+8*c.Cr+130*c.V)*logRate(rate)
}

// Vickers estimates the hardness of a phase mixture cooled at rate (°C/s).
// Retained austenite is weighted with the ferrite-pearlite hardness. The
// fractions are expected to sum to 1.
func Vickers(c chem.Composition, f Fractions, rate float64) Estimate {
	e := Estimate{
		Martensite:      MartensiteHV(c, rate),
		Bainite:         BainiteHV(c, rate),
		FerritePearlite: FerritePearliteHV(c, rate),
	}
	e.Total = f.Martensite*e.Martensite +
		f.Bainite*e.Bainite +
		(f.Ferrite+f.Pearlite+f.Austenite)*e.FerritePearlite
	return e
}
