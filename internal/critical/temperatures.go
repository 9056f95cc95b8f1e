package critical

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/steelcct/internal/chem"
)

// Temperatures holds the critical transformation temperatures of an alloy (°C)
type Temperatures struct {
	Ae3 float64 // Austenite/ferrite equilibrium boundary
	Ae1 float64 // Eutectoid temperature
	Bs  float64 // Bainite start
	Ms  float64 // Martensite start
}

// Compute evaluates all four regressions for a composition
func Compute(c chem.Composition) Temperatures {
	return Temperatures{
		Ae3: Ae3(c),
		Ae1: Ae1(c),
		Bs:  Bs(c),
		Ms:  Ms(c),
	}
}

// Ae3 - Andrews (1965) linear regression
// Ae3 = 910 - 203√C - 15.2Ni + 44.7Si + 104V + 31.5Mo + 13.1W - 30Mn - 11Cr - 20Cu + 400Al
func Ae3(c chem.Composition) float64 {
	return 910 - 203*math.Sqrt(math.Max(c.C, 0)) - 15.2*c.Ni + 44.7*c.Si + 104*c.V +
		31.5*c.Mo + 13.1*c.W - 30*c.Mn - 11*c.Cr - 20*c.Cu + 400*c.Al
}

// Ae1 - Andrews (1965)
// Ae1 = 723 - 10.7Mn - 16.9Ni + 29.1Si + 16.9Cr + 6.38W
func Ae1(c chem.Composition) float64 {
	return 723 - 10.7*c.Mn - 16.9*c.Ni + 29.1*c.Si + 16.9*c.Cr + 6.38*c.W
}

// Bs - Kirkaldy and Venugopalan (1983)
// Bs = 656 - 58C - 35Mn - 75Si - 15Ni - 34Cr - 41Mo
func Bs(c chem.Composition) float64 {
	return 656 - 58*c.C - 35*c.Mn - 75*c.Si - 15*c.Ni - 34*c.Cr - 41*c.Mo
}

// Ms - Andrews (1965) linear form
// Ms = 539 - 423C - 30.4Mn - 17.7Ni - 12.1Cr - 7.5Mo + 10Co - 7.5Si
func Ms(c chem.Composition) float64 {
	return 539 - 423*c.C - 30.4*c.Mn - 17.7*c.Ni - 12.1*c.Cr - 7.5*c.Mo + 10*c.Co - 7.5*c.Si
}

// Ordered reports whether Ms < Bs < Ae1 <= Ae3, which holds for low-alloy
// steels inside the calibration range of the regressions.
func (t Temperatures) Ordered() bool {
	return t.Ms < t.Bs && t.Bs < t.Ae1 && t.Ae1 <= t.Ae3
}

// Check describes the first ordering violation, or returns nil
func (t Temperatures) Check() error {
	switch {
	case t.Ms >= t.Bs:
		return fmt.Errorf("Ms (%.1f°C) is not below Bs (%.1f°C)", t.Ms, t.Bs)
	case t.Bs >= t.Ae1:
		return fmt.Errorf("Bs (%.1f°C) is not below Ae1 (%.1f°C)", t.Bs, t.Ae1)
	case t.Ae1 > t.Ae3:
		return fmt.Errorf("Ae1 (%.1f°C) is above Ae3 (%.1f°C), hypereutectoid composition", t.Ae1, t.Ae3)
	}
	return nil
}
