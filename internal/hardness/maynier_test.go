package hardness_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexiusacademia/steelcct/internal/chem"
	"github.com/alexiusacademia/steelcct/internal/hardness"
)

var plain = chem.Composition{C: 0.4}

func TestPhaseHardness(t *testing.T) {
	lv := math.Log10(3600) // 1 °C/s in °C/h

	tests := []struct {
		name string
		fn   func(chem.Composition, float64) float64
		want float64
	}{
		{"Martensite", hardness.MartensiteHV, 127 + 949*0.4 + 21*lv},
		{"Bainite", hardness.BainiteHV, -323 + 185*0.4 + (89+53*0.4)*lv},
		{"Ferrite Pearlite", hardness.FerritePearliteHV, 42 + 223*0.4 + 10*lv},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.fn(plain, 1), 1e-9)
		})
	}
}

func TestRateFloor(t *testing.T) {
	// Rates below 1 °C/h, zero and NaN all evaluate at log Vr = 0
	want := 127 + 949*0.4
	for _, rate := range []float64{0, 1e-6, math.NaN()} {
		assert.InDelta(t, want, hardness.MartensiteHV(plain, rate), 1e-9, "rate=%g", rate)
	}
	// Heating rates use their magnitude
	assert.Equal(t, hardness.MartensiteHV(plain, 10), hardness.MartensiteHV(plain, -10))
}

func TestVickers_Mixture(t *testing.T) {
	rate := 10.0
	hvM := hardness.MartensiteHV(plain, rate)
	hvB := hardness.BainiteHV(plain, rate)
	hvFP := hardness.FerritePearliteHV(plain, rate)

	tests := []struct {
		name string
		f    hardness.Fractions
		want float64
	}{
		{"Full Martensite", hardness.Fractions{Martensite: 1}, hvM},
		{"Full Bainite", hardness.Fractions{Bainite: 1}, hvB},
		{"Ferrite Pearlite", hardness.Fractions{Ferrite: 0.5, Pearlite: 0.5}, hvFP},
		{"Retained Austenite Is Soft", hardness.Fractions{Martensite: 0.9, Austenite: 0.1}, 0.9*hvM + 0.1*hvFP},
		{"Mixed", hardness.Fractions{Ferrite: 0.2, Pearlite: 0.3, Bainite: 0.25, Martensite: 0.25}, 0.25*hvM + 0.25*hvB + 0.5*hvFP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := hardness.Vickers(plain, tt.f, rate)
			assert.InDelta(t, tt.want, e.Total, 1e-9)
			assert.Equal(t, hvM, e.Martensite)
			assert.Equal(t, hvB, e.Bainite)
			assert.Equal(t, hvFP, e.FerritePearlite)
		})
	}
}

func TestVickers_Ordering(t *testing.T) {
	// Martensite is the hardest constituent over the whole sweep
	for _, rate := range []float64{1000, 10, 0.1, 0.001} {
		hvM := hardness.MartensiteHV(plain, rate)
		assert.Greater(t, hvM, hardness.BainiteHV(plain, rate), "rate=%g", rate)
		assert.Greater(t, hvM, hardness.FerritePearliteHV(plain, rate), "rate=%g", rate)
	}
}
