package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/steelcct/internal/alloy"
	"github.com/alexiusacademia/steelcct/internal/chem"
	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/alexiusacademia/steelcct/internal/transform"
)

func newEngine(t *testing.T, c chem.Composition, opts ...transform.Option) *transform.Engine {
	t.Helper()
	a, err := alloy.New(7, c)
	require.NoError(t, err)
	return transform.NewEngine(a, opts...)
}

var plainCarbon = chem.Composition{C: 0.4}

func assertValidState(t *testing.T, s transform.State) {
	t.Helper()
	assert.InDelta(t, 1.0, s.Sum(), 1e-9)
	for _, p := range kinetics.Phases {
		assert.GreaterOrEqual(t, s.Get(p), 0.0, p.String())
		assert.LessOrEqual(t, s.Get(p), 1.0, p.String())
	}
}

func TestIntegrate_SingleSample(t *testing.T) {
	e := newEngine(t, plainCarbon)
	c, err := transform.NewCycle([]float64{0}, []float64{500})
	require.NoError(t, err)

	res, err := e.Integrate(c)
	require.NoError(t, err)
	assert.Equal(t, transform.Initial(), res.Final)
	assert.Empty(t, res.Events)
	require.Len(t, res.Samples, 1)
	assert.Equal(t, transform.Initial(), res.Samples[0].State)
}

func TestIntegrate_NilCycle(t *testing.T) {
	e := newEngine(t, plainCarbon)
	_, err := e.Integrate(nil)
	assert.ErrorIs(t, err, transform.ErrInvalidCycle)
}

func TestIntegrate_MonotoneOnCooling(t *testing.T) {
	e := newEngine(t, plainCarbon)
	for _, rate := range []float64{1000, 30, 1, 0.01} {
		c, err := transform.LinearCooling(900, 25, rate)
		require.NoError(t, err)
		res, err := e.Integrate(c)
		require.NoError(t, err)

		prev := transform.Initial()
		for i, smp := range res.Samples {
			assertValidState(t, smp.State)
			if i > 0 {
				assert.Greater(t, smp.Time, res.Samples[i-1].Time)
			}
			for _, p := range []kinetics.Phase{kinetics.Ferrite, kinetics.Pearlite, kinetics.Bainite, kinetics.Martensite} {
				assert.GreaterOrEqual(t, smp.State.Get(p), prev.Get(p), "rate %g, %s at sample %d", rate, p, i)
			}
			assert.LessOrEqual(t, smp.State.Austenite, prev.Austenite+1e-12)
			prev = smp.State
		}
		assert.Equal(t, prev, res.Final)
		assert.InDelta(t, rate, res.Rate, 1e-9)
	}
}

func TestIntegrate_IsothermalConsistency(t *testing.T) {
	// Holding below the nose reproduces the isothermal start and finish
	// times of the TTT curve
	tests := []struct {
		name  string
		phase kinetics.Phase
		T     float64
		hold  float64
	}{
		{"Ferrite", kinetics.Ferrite, 750, 1000},
		{"Bainite", kinetics.Bainite, 500, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, plainCarbon)
			curve := e.Model().Curve(tt.phase)
			c, err := transform.Isothermal(tt.T, tt.hold)
			require.NoError(t, err)

			res, err := e.Integrate(c)
			require.NoError(t, err)

			wantStart, ok := curve.StartTime(tt.T)
			require.True(t, ok)
			wantFinish, ok := curve.FinishTime(tt.T)
			require.True(t, ok)
			require.Less(t, wantFinish, tt.hold)

			start, ok := res.Event(tt.phase, transform.Start)
			require.True(t, ok)
			assert.InEpsilon(t, wantStart, start.Time, 1e-9)
			assert.Equal(t, tt.T, start.Temp)

			finish, ok := res.Event(tt.phase, transform.Finish)
			require.True(t, ok)
			assert.InEpsilon(t, wantFinish, finish.Time, 1e-9)
		})
	}
}

func TestIntegrate_IsothermalBainiteFollowsAvrami(t *testing.T) {
	e := newEngine(t, plainCarbon)
	curve := e.Model().Curve(kinetics.Bainite)
	c, err := transform.Isothermal(500, 10)
	require.NoError(t, err)

	res, err := e.Integrate(c)
	require.NoError(t, err)
	for _, smp := range res.Samples {
		assert.InDelta(t, curve.Fraction(500, smp.Time), smp.State.Bainite, 1e-9, "t=%g", smp.Time)
		assert.Zero(t, smp.State.Ferrite)
		assert.Zero(t, smp.State.Martensite)
	}
}

func TestIntegrate_FerriteCap(t *testing.T) {
	e := newEngine(t, plainCarbon)
	c, err := transform.Isothermal(750, 1000)
	require.NoError(t, err)

	res, err := e.Integrate(c)
	require.NoError(t, err)
	limit := e.Model().FerriteCap(750)
	assert.InDelta(t, limit, res.Final.Ferrite, 1e-9)
	assert.InDelta(t, 1-limit, res.Final.Austenite, 1e-9)
	assert.Zero(t, res.Final.Pearlite)
}

func TestIntegrate_FerriteFollowsRisingCap(t *testing.T) {
	// Ferrite completes against the cap high in the band, then keeps
	// growing with the cap while the steel cools towards Ae1
	e := newEngine(t, plainCarbon)
	m := e.Model()
	ae1 := m.Temperatures().Ae1
	c, err := transform.NewCycle([]float64{0, 1e5, 2e5}, []float64{770, 770, ae1 + 1})
	require.NoError(t, err)

	res, err := e.Integrate(c)
	require.NoError(t, err)

	var held transform.State
	for _, smp := range res.Samples {
		if smp.Time == 1e5 {
			held = smp.State
		}
	}
	assert.InDelta(t, m.FerriteCap(770), held.Ferrite, 1e-9)

	assert.InDelta(t, m.FerriteCap(ae1+1), res.Final.Ferrite, 0.005)
	assert.Greater(t, res.Final.Ferrite, 4*held.Ferrite)
	assert.Zero(t, res.Final.Pearlite)
	assert.InDelta(t, 1-res.Final.Ferrite, res.Final.Austenite, 1e-9)
}

func TestIntegrate_Martensite(t *testing.T) {
	e := newEngine(t, plainCarbon)
	km := e.Model().Martensite()

	t.Run("Start Below Ms", func(t *testing.T) {
		c, err := transform.NewCycle([]float64{0, 1}, []float64{300, 25})
		require.NoError(t, err)
		res, err := e.Integrate(c)
		require.NoError(t, err)

		assert.InDelta(t, km.Fraction(25), res.Final.Martensite, 1e-9)
		assertValidState(t, res.Final)
	})

	t.Run("Quench Start Event At Ms", func(t *testing.T) {
		c, err := transform.LinearCooling(900, 25, 1000)
		require.NoError(t, err)
		res, err := e.Integrate(c)
		require.NoError(t, err)

		ev, ok := res.Event(kinetics.Martensite, transform.Start)
		require.True(t, ok)
		assert.InDelta(t, km.Ms, ev.Temp, 1e-6)
		assert.Greater(t, res.Final.Martensite, 0.9)
	})

	t.Run("Reheating Does Not Reverse", func(t *testing.T) {
		c, err := transform.NewCycle([]float64{0, 1, 2, 3}, []float64{900, 200, 300, 250})
		require.NoError(t, err)
		res, err := e.Integrate(c)
		require.NoError(t, err)

		var atMin transform.State
		for _, smp := range res.Samples {
			if smp.Time == 1 {
				atMin = smp.State
			}
		}
		require.NotZero(t, atMin.Martensite)
		// Above the lowest temperature reached nothing further transforms
		assert.Equal(t, atMin, res.Final)
	})
}

func TestIntegrate_Hardness(t *testing.T) {
	e := newEngine(t, plainCarbon)

	fast, err := transform.LinearCooling(900, 25, 1000)
	require.NoError(t, err)
	slow, err := transform.LinearCooling(900, 25, 0.01)
	require.NoError(t, err)

	rf, err := e.Integrate(fast)
	require.NoError(t, err)
	rs, err := e.Integrate(slow)
	require.NoError(t, err)

	assert.Greater(t, rf.Hardness.Total, rs.Hardness.Total)
	assert.Equal(t, rf.Hardness.Total, rf.Samples[len(rf.Samples)-1].HV)
	assert.InDelta(t, rf.Hardness.FerritePearlite, rf.Samples[0].HV, 1e-9)
}

func TestIntegrate_Deterministic(t *testing.T) {
	e := newEngine(t, chem.Composition{C: 0.4, Mn: 0.85, Si: 0.25, Cr: 0.95, Mo: 0.2})
	c, err := transform.NewCycle([]float64{0, 20, 200, 400}, []float64{880, 650, 600, 20})
	require.NoError(t, err)

	a, err := e.Integrate(c)
	require.NoError(t, err)
	b, err := e.Integrate(c)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSettings(t *testing.T) {
	e := newEngine(t, plainCarbon)
	assert.Equal(t, transform.DefaultSettings(), e.Settings())

	e = newEngine(t, plainCarbon, transform.WithSettings(transform.Settings{MaxTempStep: -1, MinSegmentSteps: 0, Workers: -2, MinAustenite: -1}))
	s := e.Settings()
	assert.Equal(t, 1.0, s.MaxTempStep)
	assert.Equal(t, 1, s.MinSegmentSteps)
	assert.Zero(t, s.Workers)
	assert.Zero(t, s.MinAustenite)

	// Finer steps give the same microstructure within integration error
	coarse := newEngine(t, plainCarbon, transform.WithSettings(transform.Settings{MaxTempStep: 1, MinSegmentSteps: 100, MinAustenite: 0.01}))
	fine := newEngine(t, plainCarbon, transform.WithSettings(transform.Settings{MaxTempStep: 0.25, MinSegmentSteps: 100, MinAustenite: 0.01}))
	c, err := transform.LinearCooling(900, 25, 3)
	require.NoError(t, err)
	rc, err := coarse.Integrate(c)
	require.NoError(t, err)
	rf, err := fine.Integrate(c)
	require.NoError(t, err)
	assert.InDelta(t, rf.Final.Ferrite, rc.Final.Ferrite, 0.02)
	assert.InDelta(t, rf.Final.Pearlite, rc.Final.Pearlite, 0.02)
}
