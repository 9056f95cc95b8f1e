package chem_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/steelcct/internal/chem"
)

func TestParseElement(t *testing.T) {
	tests := []struct {
		in   string
		want chem.Element
		ok   bool
	}{
		{"C", chem.C, true},
		{"mn", chem.Mn, true},
		{" MO ", chem.Mo, true},
		{"Fe", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := chem.ParseElement(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromMap(t *testing.T) {
	t.Run("Case Insensitive Symbols", func(t *testing.T) {
		c, err := chem.FromMap(map[string]float64{"c": 0.4, "MN": 0.75, "Cr": 1})
		require.NoError(t, err)
		assert.Equal(t, 0.4, c.C)
		assert.Equal(t, 0.75, c.Mn)
		assert.Equal(t, 1.0, c.Cr)
		assert.Zero(t, c.Ni)
	})

	t.Run("Unknown Symbol", func(t *testing.T) {
		_, err := chem.FromMap(map[string]float64{"C": 0.4, "Xx": 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, chem.ErrUnknownElement))
		assert.Contains(t, err.Error(), "Xx")
	})

	t.Run("Round Trip Through Map", func(t *testing.T) {
		in := chem.Composition{C: 0.4, Mn: 0.85, Cr: 0.95, Mo: 0.2}
		out, err := chem.FromMap(in.Map())
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestComposition_GetWith(t *testing.T) {
	var c chem.Composition
	for i, e := range chem.Elements {
		c = c.With(e, float64(i+1))
	}
	for i, e := range chem.Elements {
		assert.Equal(t, float64(i+1), c.Get(e), e)
	}

	// With never mutates the receiver
	base := chem.Composition{C: 0.2}
	_ = base.With(chem.C, 0.8)
	assert.Equal(t, 0.2, base.C)

	assert.Zero(t, c.Get("Fe"))
}

func TestComposition_String(t *testing.T) {
	assert.Equal(t, "Fe", chem.Composition{}.String())
	assert.Equal(t, "Fe-0.4C-0.75Mn", chem.Composition{C: 0.4, Mn: 0.75}.String())
	assert.Equal(t, "Fe-0.4C-0.25Si-0.85Mn-0.2Mo-0.95Cr",
		chem.Composition{C: 0.4, Si: 0.25, Mn: 0.85, Cr: 0.95, Mo: 0.2}.String())
}

func TestComposition_Invalid(t *testing.T) {
	_, _, bad := chem.Composition{C: 0.4, Mn: 0.75}.Invalid()
	assert.False(t, bad)

	e, v, bad := chem.Composition{C: 0.4, Ni: -1}.Invalid()
	assert.True(t, bad)
	assert.Equal(t, chem.Ni, e)
	assert.Equal(t, -1.0, v)

	e, _, bad = chem.Composition{Mo: math.NaN()}.Invalid()
	assert.True(t, bad)
	assert.Equal(t, chem.Mo, e)

	e, _, bad = chem.Composition{W: math.Inf(1)}.Invalid()
	assert.True(t, bad)
	assert.Equal(t, chem.W, e)
}
