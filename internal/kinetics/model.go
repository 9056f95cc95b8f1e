package kinetics

import (
	"math"

	"github.com/alexiusacademia/steelcct/internal/alloy"
	"github.com/alexiusacademia/steelcct/internal/chem"
	"github.com/alexiusacademia/steelcct/internal/critical"
)

// Avrami exponents of the diffusional phases
const (
	FerriteExponent  = 2.0
	PearliteExponent = 3.0
	BainiteExponent  = 2.0
)

// Carbon contents bounding the proeutectoid ferrite lever rule (wt%)
const (
	EutectoidCarbon = 0.76
	FerriteCarbon   = 0.02
)

// Model holds the transformation kinetics of one alloy. It is read-only
// after construction and safe for concurrent use.
type Model struct {
	alloy      *alloy.Alloy
	temps      critical.Temperatures
	curves     [3]*Curve // indexed by Ferrite, Pearlite, Bainite
	martensite KoistinenMarburger
	ferriteMax float64 // equilibrium proeutectoid ferrite fraction
}

// New derives the kinetics of every phase from the alloy
func New(a *alloy.Alloy) *Model {
	c := a.Composition()
	t := a.Temperatures()
	g := a.GrainSize()

	m := &Model{
		alloy: a,
		temps: t,
		curves: [3]*Curve{
			{
				phase:       Ferrite,
				band:        Band{Lower: t.Bs, Upper: t.Ae3},
				factor:      FerriteFactor(c),
				grainFactor: math.Exp2(0.41 * g),
				m:           3,
				n:           FerriteExponent,
			},
			{
				phase:       Pearlite,
				band:        Band{Lower: t.Bs, Upper: t.Ae1},
				factor:      PearliteFactor(c),
				grainFactor: math.Exp2(0.32 * g),
				m:           3,
				n:           PearliteExponent,
			},
			{
				phase:       Bainite,
				band:        Band{Lower: t.Ms, Upper: t.Bs},
				factor:      BainiteFactor(c),
				grainFactor: math.Exp2(0.29 * g),
				m:           2,
				n:           BainiteExponent,
			},
		},
		martensite: NewKoistinenMarburger(c, t.Ms),
		ferriteMax: clamp01((EutectoidCarbon - c.C) / (EutectoidCarbon - FerriteCarbon)),
	}
	return m
}

// FerriteFactor - composition factor of the ferrite reaction (Li et al., 1998)
func FerriteFactor(c chem.Composition) float64 {
	return math.Exp(1.00 + 6.31*c.C + 1.78*c.Mn + 0.31*c.Si + 1.12*c.Ni + 2.70*c.Cr + 4.06*c.Mo)
}

// PearliteFactor - composition factor of the pearlite reaction
func PearliteFactor(c chem.Composition) float64 {
	return math.Exp(-4.25 + 4.12*c.C + 4.36*c.Mn + 0.44*c.Si + 1.71*c.Ni + 3.33*c.Cr + 5.19*math.Sqrt(c.Mo))
}

// BainiteFactor - composition factor of the bainite reaction
func BainiteFactor(c chem.Composition) float64 {
	return math.Exp(-10.23 + 10.18*c.C + 0.85*c.Mn + 0.55*c.Ni + 0.90*c.Cr + 0.36*c.Mo)
}

// Alloy returns the alloy the model was built for
func (m *Model) Alloy() *alloy.Alloy { return m.alloy }

// Temperatures returns the critical temperatures of the alloy
func (m *Model) Temperatures() critical.Temperatures { return m.temps }

// Curve returns the kinetics of a diffusional phase, or nil for
// martensite and austenite
func (m *Model) Curve(p Phase) *Curve {
	switch p {
	case Ferrite, Pearlite, Bainite:
		return m.curves[p]
	}
	return nil
}

// Curves returns the diffusional curves in competition order
func (m *Model) Curves() []*Curve {
	return m.curves[:]
}

// Martensite returns the athermal martensite model
func (m *Model) Martensite() KoistinenMarburger { return m.martensite }

// FerriteMax returns the equilibrium proeutectoid ferrite fraction given by
// the lever rule at the eutectoid
func (m *Model) FerriteMax() float64 { return m.ferriteMax }

// FerriteCap returns the largest ferrite fraction allowed at T. Between Ae3
// and Ae1 it follows the lever rule; below Ae1 it is FerriteMax.
func (m *Model) FerriteCap(T float64) float64 {
	if T >= m.temps.Ae3 {
		return 0
	}
	if m.temps.Ae3 <= m.temps.Ae1 || T <= m.temps.Ae1 {
		return m.ferriteMax
	}
	return m.ferriteMax * clamp01((m.temps.Ae3-T)/(m.temps.Ae3-m.temps.Ae1))
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
