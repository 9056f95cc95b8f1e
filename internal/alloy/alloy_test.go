package alloy_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/steelcct/internal/alloy"
	"github.com/alexiusacademia/steelcct/internal/chem"
	"github.com/alexiusacademia/steelcct/internal/critical"
)

func TestNew(t *testing.T) {
	c := chem.Composition{C: 0.4, Mn: 0.75}
	a, err := alloy.New(7, c)
	require.NoError(t, err)

	assert.Equal(t, 7.0, a.GrainSize())
	assert.Equal(t, c, a.Composition())
	assert.Equal(t, critical.Compute(c), a.Temperatures())
	assert.Equal(t, a.Temperatures().Ae3, a.Ae3())
	assert.Equal(t, a.Temperatures().Ae1, a.Ae1())
	assert.Equal(t, a.Temperatures().Bs, a.Bs())
	assert.Equal(t, a.Temperatures().Ms, a.Ms())
	assert.Equal(t, "Fe-0.4C-0.75Mn (ASTM grain size 7)", a.Title())
}

func TestNew_InvalidComposition(t *testing.T) {
	tests := []struct {
		name    string
		c       chem.Composition
		element chem.Element
	}{
		{"Negative Carbon", chem.Composition{C: -0.1}, chem.C},
		{"NaN Chromium", chem.Composition{C: 0.4, Cr: math.NaN()}, chem.Cr},
		{"Infinite Tungsten", chem.Composition{C: 0.4, W: math.Inf(1)}, chem.W},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := alloy.New(7, tt.c)
			assert.Nil(t, a)
			require.Error(t, err)
			assert.True(t, errors.Is(err, alloy.ErrInvalidComposition))

			var compErr *alloy.CompositionError
			require.ErrorAs(t, err, &compErr)
			assert.Equal(t, tt.element, compErr.Element)
		})
	}
}

func TestNew_InvalidGrainSize(t *testing.T) {
	_, err := alloy.New(math.NaN(), chem.Composition{C: 0.4})
	assert.Error(t, err)

	_, err = alloy.New(math.Inf(-1), chem.Composition{C: 0.4})
	assert.Error(t, err)
}

func TestComposition_IsCopy(t *testing.T) {
	a, err := alloy.New(7, chem.Composition{C: 0.4})
	require.NoError(t, err)

	c := a.Composition()
	c.C = 1.2
	assert.Equal(t, 0.4, a.Composition().C)
}

func TestPreset(t *testing.T) {
	t.Run("Known Grades", func(t *testing.T) {
		for _, name := range alloy.PresetNames() {
			spec, err := alloy.Preset(name)
			require.NoError(t, err, name)
			assert.Equal(t, "AISI "+name, spec.Name)
			assert.Equal(t, alloy.DefaultGrainSize, spec.GrainSize)

			a, err := spec.Build()
			require.NoError(t, err, name)
			assert.Greater(t, a.Composition().C, 0.0)
		}
	})

	t.Run("Prefixes", func(t *testing.T) {
		for _, name := range []string{"4140", "AISI4140", "aisi4140", "SAE4140", " 4140 "} {
			spec, err := alloy.Preset(name)
			require.NoError(t, err, name)
			assert.Equal(t, "AISI 4140", spec.Name)
			assert.Equal(t, 0.95, spec.Composition.Cr)
		}
	})

	t.Run("Unknown Grade", func(t *testing.T) {
		_, err := alloy.Preset("304")
		require.Error(t, err)
		assert.True(t, errors.Is(err, alloy.ErrUnknownPreset))
	})

	t.Run("Sorted Names", func(t *testing.T) {
		names := alloy.PresetNames()
		assert.IsIncreasing(t, names)
		assert.Contains(t, names, "1040")
		assert.Len(t, names, 7)
	})
}
