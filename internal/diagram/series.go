package diagram

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/alexiusacademia/steelcct/internal/transform"
	"gonum.org/v1/gonum/floats"
)

// Point is one vertex of a plotted series
type Point struct {
	X float64
	Y float64
}

// Kind tells the renderer how a series should be drawn
type Kind int

const (
	StartCurve Kind = iota
	FinishCurve
	PathCurve
	FractionCurve
	HardnessCurve
)

// Series is a named polyline
type Series struct {
	Name   string
	Phase  kinetics.Phase
	Kind   Kind
	Points []Point
}

// Guide is a labelled horizontal reference line, e.g. Ms
type Guide struct {
	Label string
	Y     float64
}

// Diagram holds everything a renderer needs to draw one set of axes
type Diagram struct {
	Title  string
	XLabel string
	YLabel string
	LogX   bool
	Series []Series
	Guides []Guide
}

// Axis selects the abscissa of a phase fraction diagram
type Axis int

const (
	TimeAxis Axis = iota
	TemperatureAxis
)

// MaxTTTTime clips TTT curves near the top of their band where the
// transformation time diverges (s)
const MaxTTTTime = 1e6

// DefaultHardnessRates is the cooling rate sweep (°C/s) of the hardness diagram
var DefaultHardnessRates = []float64{1000, 300, 100, 30, 10, 3, 1, 3e-1, 1e-1, 3e-2, 1e-2, 3e-3, 1e-3}

// CriticalGuides returns the Ae3, Ae1, Bs and Ms reference lines
func CriticalGuides(m *kinetics.Model) []Guide {
	t := m.Temperatures()
	return []Guide{
		{Label: "Ae3", Y: t.Ae3},
		{Label: "Ae1", Y: t.Ae1},
		{Label: "Bs", Y: t.Bs},
		{Label: "Ms", Y: t.Ms},
	}
}

// TTT samples the isothermal start and finish curves of every diffusional
// phase at points temperatures strictly inside its band
func TTT(m *kinetics.Model, points int) Diagram {
	if points < 2 {
		points = 2
	}
	d := Diagram{
		Title:  m.Alloy().Title(),
		XLabel: "Time (s)",
		YLabel: "Temperature (°C)",
		LogX:   true,
		Guides: CriticalGuides(m),
	}

	for _, c := range m.Curves() {
		band := c.Band()
		if band.Empty() {
			continue
		}
		start := Series{Name: c.Phase().Title() + " start", Phase: c.Phase(), Kind: StartCurve}
		finish := Series{Name: c.Phase().Title() + " finish", Phase: c.Phase(), Kind: FinishCurve}
		for i := 0; i < points; i++ {
			T := band.Lower + (band.Upper-band.Lower)*float64(i+1)/float64(points+1)
			if t, ok := c.StartTime(T); ok && plottable(t) {
				start.Points = append(start.Points, Point{X: t, Y: T})
			}
			if t, ok := c.FinishTime(T); ok && plottable(t) {
				finish.Points = append(finish.Points, Point{X: t, Y: T})
			}
		}
		for _, s := range []Series{start, finish} {
			if len(s.Points) > 0 {
				d.Series = append(d.Series, s)
			}
		}
	}
	return d
}

func plottable(t float64) bool {
	return t > 0 && t <= MaxTTTTime && !math.IsNaN(t)
}

// TimeRange returns the decade-rounded time window spanned by the series.
// ok is false when no positive finite time exists.
func TimeRange(d Diagram) (tmin, tmax float64, ok bool) {
	var times []float64
	for _, s := range d.Series {
		for _, p := range s.Points {
			if p.X > 0 && !math.IsInf(p.X, 0) {
				times = append(times, p.X)
			}
		}
	}
	if len(times) == 0 {
		return 0, 0, false
	}
	tmin = math.Pow(10, math.Floor(math.Log10(floats.Min(times))))
	tmax = math.Pow(10, math.Ceil(math.Log10(floats.Max(times))))
	if tmax <= tmin {
		tmax = tmin * 10
	}
	return tmin, tmax, true
}

// PairedRates returns the cooling rate span that maps a CCT diagram
// started at tini onto the time window [tmin, tmax] of a TTT diagram
func PairedRates(tini, tmin, tmax float64) (phiMin, phiMax float64) {
	return tini / tmax, tini / tmin
}

// CCT turns the crossings of a cooling sweep into start and finish curves
// of every diffusional phase, ordered by time
func CCT(m *kinetics.Model, runs []transform.CoolingRun) Diagram {
	d := Diagram{
		Title:  m.Alloy().Title(),
		XLabel: "Time (s)",
		YLabel: "Temperature (°C)",
		LogX:   true,
		Guides: CriticalGuides(m),
	}

	for _, p := range kinetics.Diffusional {
		for _, kind := range []transform.EventKind{transform.Start, transform.Finish} {
			s := Series{Name: fmt.Sprintf("%s %s", p.Title(), kind), Phase: p, Kind: StartCurve}
			if kind == transform.Finish {
				s.Kind = FinishCurve
			}
			for _, run := range runs {
				if ev, ok := run.Event(p, kind); ok && ev.Time > 0 {
					s.Points = append(s.Points, Point{X: ev.Time, Y: ev.Temp})
				}
			}
			if len(s.Points) == 0 {
				continue
			}
			sort.SliceStable(s.Points, func(i, j int) bool { return s.Points[i].X < s.Points[j].X })
			d.Series = append(d.Series, s)
		}
	}
	return d
}

// CycleOverlay is the thermal path drawn on top of a TTT or CCT diagram
func CycleOverlay(c *transform.Cycle) Series {
	s := Series{Name: "Thermal cycle", Phase: kinetics.Austenite, Kind: PathCurve}
	for i := range c.Time {
		s.Points = append(s.Points, Point{X: c.Time[i], Y: c.Temp[i]})
	}
	return s
}

// Fractions plots the phase fractions of an integrated cycle against time
// or temperature
func Fractions(title string, res *transform.Result, axis Axis) Diagram {
	d := Diagram{
		Title:  title,
		XLabel: "Time (s)",
		YLabel: "Phase fraction",
	}
	if axis == TemperatureAxis {
		d.XLabel = "Temperature (°C)"
	}

	for _, p := range kinetics.Phases {
		s := Series{Name: p.Title(), Phase: p, Kind: FractionCurve}
		for _, smp := range res.Samples {
			x := smp.Time
			if axis == TemperatureAxis {
				x = smp.Temp
			}
			s.Points = append(s.Points, Point{X: x, Y: smp.State.Get(p)})
		}
		d.Series = append(d.Series, s)
	}
	return d
}

// Sweep holds the diagrams of a hardness-vs-cooling-rate study
type Sweep struct {
	Runs      []transform.CoolingRun
	Fractions Diagram // final phase fractions vs cooling rate
	Hardness  Diagram // HV vs cooling rate
}

// HardnessSweep cools from tini to tfin at every rate and collects the
// final fractions and hardness
func HardnessSweep(ctx context.Context, e *transform.Engine, tini, tfin float64, rates []float64) (*Sweep, error) {
	runs, err := e.Sweep(ctx, tini, tfin, rates)
	if err != nil {
		return nil, err
	}

	sw := &Sweep{
		Runs: runs,
		Fractions: Diagram{
			Title:  fmt.Sprintf("Phase fractions at %g °C", tfin),
			XLabel: "Cooling rate (°C/s)",
			YLabel: "Phase fraction",
			LogX:   true,
		},
		Hardness: Diagram{
			Title:  fmt.Sprintf("Hardness for phase fractions at %g °C", tfin),
			XLabel: "Cooling rate (°C/s)",
			YLabel: "Vickers hardness (HV)",
			LogX:   true,
		},
	}

	order := make([]int, len(runs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return runs[order[a]].Rate < runs[order[b]].Rate })

	for _, p := range []kinetics.Phase{kinetics.Ferrite, kinetics.Pearlite, kinetics.Bainite, kinetics.Martensite} {
		s := Series{Name: p.Title(), Phase: p, Kind: FractionCurve}
		for _, i := range order {
			s.Points = append(s.Points, Point{X: runs[i].Rate, Y: runs[i].Final.Get(p)})
		}
		sw.Fractions.Series = append(sw.Fractions.Series, s)
	}

	hv := Series{Name: "HV", Phase: kinetics.Austenite, Kind: HardnessCurve}
	for _, i := range order {
		hv.Points = append(hv.Points, Point{X: runs[i].Rate, Y: runs[i].Hardness})
	}
	sw.Hardness.Series = append(sw.Hardness.Series, hv)
	return sw, nil
}

// Nose returns the point of a curve with the shortest time, the tip of the
// C-curve
func Nose(s Series) (Point, bool) {
	best := Point{X: math.Inf(1)}
	for _, p := range s.Points {
		if p.X > 0 && p.X < best.X {
			best = p
		}
	}
	return best, !math.IsInf(best.X, 1)
}

// Find returns the first series drawn for phase p with the given kind
func (d Diagram) Find(p kinetics.Phase, kind Kind) (Series, bool) {
	for _, s := range d.Series {
		if s.Phase == p && s.Kind == kind {
			return s, true
		}
	}
	return Series{}, false
}
