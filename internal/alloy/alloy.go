package alloy

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/steelcct/internal/chem"
	"github.com/alexiusacademia/steelcct/internal/critical"
)

// Alloy is an immutable steel description: composition, prior-austenite
// grain size and the critical temperatures derived from them.
type Alloy struct {
	grainSize   float64 // ASTM grain size number
	composition chem.Composition
	temps       critical.Temperatures
}

// New validates the composition and computes the critical temperatures once
func New(grainSize float64, c chem.Composition) (*Alloy, error) {
	if e, v, bad := c.Invalid(); bad {
		return nil, &CompositionError{Element: e, Value: v}
	}
	if math.IsNaN(grainSize) || math.IsInf(grainSize, 0) {
		return nil, fmt.Errorf("invalid grain size %v", grainSize)
	}

	return &Alloy{
		grainSize:   grainSize,
		composition: c,
		temps:       critical.Compute(c),
	}, nil
}

// GrainSize returns the ASTM grain size number
func (a *Alloy) GrainSize() float64 { return a.grainSize }

// Composition returns a copy of the alloy composition
func (a *Alloy) Composition() chem.Composition { return a.composition }

// Temperatures returns the cached critical temperatures
func (a *Alloy) Temperatures() critical.Temperatures { return a.temps }

func (a *Alloy) Ae3() float64 { return a.temps.Ae3 }
func (a *Alloy) Ae1() float64 { return a.temps.Ae1 }
func (a *Alloy) Bs() float64  { return a.temps.Bs }
func (a *Alloy) Ms() float64  { return a.temps.Ms }

// Title formats the alloy for diagram titles
func (a *Alloy) Title() string {
	return fmt.Sprintf("%s (ASTM grain size %g)", a.composition, a.grainSize)
}
