package transform

import (
	"github.com/alexiusacademia/steelcct/internal/hardness"
	"github.com/alexiusacademia/steelcct/internal/kinetics"
)

// State is the phase fraction vector at one instant of a cycle. Fractions
// are in [0, 1] and sum to 1.
type State struct {
	Ferrite    float64
	Pearlite   float64
	Bainite    float64
	Martensite float64
	Austenite  float64
}

// Initial is the fully austenitic state a cycle starts from
func Initial() State {
	return State{Austenite: 1}
}

// Get returns the fraction of phase p
func (s State) Get(p kinetics.Phase) float64 {
	switch p {
	case kinetics.Ferrite:
		return s.Ferrite
	case kinetics.Pearlite:
		return s.Pearlite
	case kinetics.Bainite:
		return s.Bainite
	case kinetics.Martensite:
		return s.Martensite
	case kinetics.Austenite:
		return s.Austenite
	}
	return 0
}

// Sum returns the total of all fractions
func (s State) Sum() float64 {
	return s.Ferrite + s.Pearlite + s.Bainite + s.Martensite + s.Austenite
}

// Fractions converts the state for the hardness model
func (s State) Fractions() hardness.Fractions {
	return hardness.Fractions{
		Ferrite:    s.Ferrite,
		Pearlite:   s.Pearlite,
		Bainite:    s.Bainite,
		Martensite: s.Martensite,
		Austenite:  s.Austenite,
	}
}

func (s *State) add(p kinetics.Phase, df float64) {
	switch p {
	case kinetics.Ferrite:
		s.Ferrite += df
	case kinetics.Pearlite:
		s.Pearlite += df
	case kinetics.Bainite:
		s.Bainite += df
	case kinetics.Martensite:
		s.Martensite += df
	}
	s.Austenite = 1 - (s.Ferrite + s.Pearlite + s.Bainite + s.Martensite)
	if s.Austenite < 0 {
		s.Austenite = 0
	}
}
