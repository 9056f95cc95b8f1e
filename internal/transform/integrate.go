package transform

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/steelcct/internal/hardness"
	"github.com/alexiusacademia/steelcct/internal/kinetics"
)

// EventKind distinguishes transformation start from finish
type EventKind int

const (
	Start EventKind = iota
	Finish
)

func (k EventKind) String() string {
	if k == Finish {
		return "finish"
	}
	return "start"
}

// Event marks where a phase's Scheil sum crosses its start or finish
// threshold along a cycle
type Event struct {
	Phase kinetics.Phase
	Kind  EventKind
	Time  float64 // s
	Temp  float64 // °C
}

// Sample is the phase state at one integration point
type Sample struct {
	Time  float64 // s
	Temp  float64 // °C
	State State
	HV    float64 // Vickers hardness of the mixture
}

// Result is the outcome of integrating a thermal cycle
type Result struct {
	Samples  []Sample
	Events   []Event
	Final    State
	Rate     float64 // characteristic cooling rate (°C/s)
	Hardness hardness.Estimate
}

// Event returns the first event of the given phase and kind
func (r *Result) Event(p kinetics.Phase, kind EventKind) (Event, bool) {
	for _, ev := range r.Events {
		if ev.Phase == p && ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

// accumulator carries the additivity sum of one diffusional phase through a
// forward pass. s = Σ Δt/τ(T) is the elapsed time in units of the
// characteristic time; the Scheil sums of the start and finish curves are
// s/start and s/finish since both curves scale with τ.
type accumulator struct {
	curve    *kinetics.Curve
	s        float64
	progress float64 // Avrami progress of the phase
	start    float64 // normalised start time
	finish   float64 // normalised finish time
	started  bool
	finished bool
	recorded bool // start crossing was reported
}

func newAccumulator(c *kinetics.Curve) *accumulator {
	return &accumulator{
		curve:  c,
		start:  kinetics.NormalizedTime(kinetics.StartFraction, c.Exponent()),
		finish: kinetics.NormalizedTime(kinetics.FinishFraction, c.Exponent()),
	}
}

// advance adds a step of dt seconds at T and returns the fraction of the
// remaining austenite the phase converts during the step. Once the
// reaction is complete the phase takes whatever austenite is left to it,
// so capped ferrite keeps following its cap as the cap rises on cooling.
func (a *accumulator) advance(T, dt float64) float64 {
	rate := a.curve.Rate(T)
	if rate == 0 || dt <= 0 {
		return 0
	}
	a.s += dt * rate

	prev := a.progress
	a.progress = kinetics.Progress(a.s, a.curve.Exponent())
	if 1-prev < 1e-12 {
		return 1
	}
	if a.progress <= prev {
		return 0
	}
	return math.Min((a.progress-prev)/(1-prev), 1)
}

// StartSum returns the Scheil sum against the start curve
func (a *accumulator) StartSum() float64 { return a.s / a.start }

// FinishSum returns the Scheil sum against the finish curve
func (a *accumulator) FinishSum() float64 { return a.s / a.finish }

// run is the per-query integration state
type run struct {
	engine *Engine
	accs   []*accumulator
	state  State
	tmin   float64 // lowest temperature reached
	events []Event

	martensiteStarted  bool
	martensiteFinished bool
	martensiteRecorded bool
}

func (e *Engine) newRun(tini float64) *run {
	r := &run{
		engine: e,
		state:  Initial(),
		tmin:   math.Max(tini, e.model.Martensite().Ms),
	}
	for _, c := range e.model.Curves() {
		r.accs = append(r.accs, newAccumulator(c))
	}
	return r
}

// step integrates from (ta, Ta) to (tb, Tb) with the temperature taken at
// the midpoint. Phases are processed in competition order, each acting on
// the austenite left by the previous ones.
func (r *run) step(ta, tb, Ta, Tb float64) {
	h := tb - ta
	Tm := 0.5 * (Ta + Tb)
	m := r.engine.model
	minAustenite := r.engine.settings.MinAustenite

	for _, acc := range r.accs {
		sOld := acc.s
		available := r.state.Austenite
		conv := acc.advance(Tm, h)

		if !acc.started && acc.s >= acc.start {
			acc.started = true
			if available >= minAustenite {
				acc.recorded = true
				r.events = append(r.events, crossing(acc.curve.Phase(), Start, sOld, acc.s, acc.start, ta, tb, Ta, Tb))
			}
		}
		if !acc.finished && acc.s >= acc.finish {
			acc.finished = true
			if acc.recorded {
				r.events = append(r.events, crossing(acc.curve.Phase(), Finish, sOld, acc.s, acc.finish, ta, tb, Ta, Tb))
			}
		}

		if conv <= 0 || r.state.Austenite <= 0 {
			continue
		}
		df := conv * r.state.Austenite
		if acc.curve.Phase() == kinetics.Ferrite {
			df = math.Min(df, math.Max(0, m.FerriteCap(Tm)-r.state.Ferrite))
		}
		df = math.Min(df, r.state.Austenite)
		if df > 0 {
			r.state.add(acc.curve.Phase(), df)
		}
	}

	r.martensite(ta, tb, Ta, Tb)
}

// martensite transforms the remaining austenite athermally once the path
// falls below Ms. Only new minimum temperatures transform further.
func (r *run) martensite(ta, tb, Ta, Tb float64) {
	km := r.engine.model.Martensite()
	if Tb >= km.Ms || Tb >= r.tmin {
		return
	}
	available := r.state.Austenite
	minAustenite := r.engine.settings.MinAustenite

	if !r.martensiteStarted {
		r.martensiteStarted = true
		if available >= minAustenite {
			r.martensiteRecorded = true
			r.events = append(r.events, temperatureCrossing(kinetics.Martensite, Start, km.Ms, ta, tb, Ta, Tb))
		}
	}

	old := km.Fraction(r.tmin)
	cur := km.Fraction(Tb)
	r.tmin = Tb
	if !r.martensiteFinished && cur >= kinetics.FinishFraction {
		r.martensiteFinished = true
		if mf, ok := km.Temperature(kinetics.FinishFraction); ok && r.martensiteRecorded {
			r.events = append(r.events, temperatureCrossing(kinetics.Martensite, Finish, mf, ta, tb, Ta, Tb))
		}
	}
	if cur <= old || old >= 1 || available <= 0 {
		return
	}
	r.state.add(kinetics.Martensite, math.Min((cur-old)/(1-old)*available, available))
}

// crossing interpolates where s reached target inside a step; s grows
// linearly with time within a step
func crossing(p kinetics.Phase, kind EventKind, sOld, sNew, target, ta, tb, Ta, Tb float64) Event {
	frac := 1.0
	if sNew > sOld {
		frac = (target - sOld) / (sNew - sOld)
	}
	return Event{
		Phase: p,
		Kind:  kind,
		Time:  ta + frac*(tb-ta),
		Temp:  Ta + frac*(Tb-Ta),
	}
}

// temperatureCrossing interpolates where the path reached T inside a step
func temperatureCrossing(p kinetics.Phase, kind EventKind, T, ta, tb, Ta, Tb float64) Event {
	frac := 1.0
	if Ta != Tb {
		frac = math.Min(math.Max((Ta-T)/(Ta-Tb), 0), 1)
	}
	return Event{
		Phase: p,
		Kind:  kind,
		Time:  ta + frac*(tb-ta),
		Temp:  Ta + frac*(Tb-Ta),
	}
}

// Integrate applies the additivity rule along the cycle and returns the
// phase state at every integration point
func (e *Engine) Integrate(c *Cycle) (*Result, error) {
	return e.integrate(c, true)
}

func (e *Engine) integrate(c *Cycle, record bool) (*Result, error) {
	if c == nil || c.Len() == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidCycle)
	}

	r := e.newRun(c.Temp[0])
	res := &Result{}
	if record {
		res.Samples = append(res.Samples, Sample{Time: c.Time[0], Temp: c.Temp[0], State: r.state})
	}

	for i := 0; i+1 < c.Len(); i++ {
		t0, t1 := c.Time[i], c.Time[i+1]
		T0, T1 := c.Temp[i], c.Temp[i+1]
		n := e.steps(T0, T1)

		ta, Ta := t0, T0
		for k := 1; k <= n; k++ {
			frac := float64(k) / float64(n)
			tb := t0 + frac*(t1-t0)
			Tb := T0 + frac*(T1-T0)
			if k == n {
				tb, Tb = t1, T1
			}
			r.step(ta, tb, Ta, Tb)
			if record {
				res.Samples = append(res.Samples, Sample{Time: tb, Temp: Tb, State: r.state})
			}
			ta, Ta = tb, Tb
		}
	}

	comp := e.model.Alloy().Composition()
	res.Events = r.events
	res.Final = r.state
	res.Rate = c.CharacteristicRate(hardness.ReferenceTemperature)
	res.Hardness = hardness.Vickers(comp, r.state.Fractions(), res.Rate)
	for i := range res.Samples {
		res.Samples[i].HV = hardness.Vickers(comp, res.Samples[i].State.Fractions(), res.Rate).Total
	}
	return res, nil
}
