package kinetics

import (
	"math"

	"github.com/alexiusacademia/steelcct/internal/chem"
)

// KoistinenMarburger is the Koistinen-Marburger athermal transformation:
// f = 1 - exp(-α (Ms - T)) below Ms, no time dependence.
type KoistinenMarburger struct {
	Ms    float64 // °C
	Alpha float64 // 1/K
}

// NewKoistinenMarburger computes α from the composition (van Bohemen and Sietsma, 2009)
func NewKoistinenMarburger(c chem.Composition, ms float64) KoistinenMarburger {
	alpha := 0.0224 - 0.0107*c.C - 0.0007*c.Mn - 0.00005*c.Ni - 0.00012*c.Cr - 0.0001*c.Mo
	return KoistinenMarburger{Ms: ms, Alpha: alpha}
}

// Fraction returns the fraction of austenite transformed to martensite
// after cooling to T
func (m KoistinenMarburger) Fraction(T float64) float64 {
	if math.IsNaN(T) || T >= m.Ms {
		return 0
	}
	return clamp01(-math.Expm1(-m.Alpha * (m.Ms - T)))
}

// Temperature inverts Fraction: the temperature at which fraction f of the
// austenite has transformed. ok is false when α is not positive.
func (m KoistinenMarburger) Temperature(f float64) (float64, bool) {
	if m.Alpha <= 0 {
		return 0, false
	}
	return m.Ms + math.Log(1-clampFraction(f))/m.Alpha, true
}
