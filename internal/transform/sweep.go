package transform

import (
	"context"
	"math"
	"runtime"

	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// CoolingRun is the outcome of one constant-rate cooling in a sweep
type CoolingRun struct {
	Rate     float64 // °C/s
	Tini     float64 // °C
	Tfin     float64 // °C
	Events   []Event
	Final    State
	Hardness float64 // HV
}

// Event returns the first event of the given phase and kind
func (c CoolingRun) Event(p kinetics.Phase, kind EventKind) (Event, bool) {
	for _, ev := range c.Events {
		if ev.Phase == p && ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

// ValidateRates rejects non-positive or non-finite cooling rates
func ValidateRates(rates []float64) error {
	for _, r := range rates {
		if !(r > 0) || math.IsInf(r, 0) {
			return &RateError{Rate: r}
		}
	}
	return nil
}

// RateSpan returns n cooling rates logarithmically spaced from lo to hi
func RateSpan(lo, hi float64, n int) ([]float64, error) {
	if err := ValidateRates([]float64{lo, hi}); err != nil {
		return nil, err
	}
	if n < 2 || lo == hi {
		return []float64{lo}, nil
	}
	return floats.LogSpan(make([]float64, n), lo, hi), nil
}

// Sweep cools linearly from tini to tfin at every rate. Runs are
// independent and execute concurrently; results keep the order of rates.
func (e *Engine) Sweep(ctx context.Context, tini, tfin float64, rates []float64) ([]CoolingRun, error) {
	if err := ValidateRates(rates); err != nil {
		return nil, err
	}

	workers := e.settings.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := e.log.WithFields(logrus.Fields{
		"rates":   len(rates),
		"tini":    tini,
		"tfin":    tfin,
		"workers": workers,
	})
	log.Debug("starting cooling sweep")

	runs := make([]CoolingRun, len(rates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rate := range rates {
		i, rate := i, rate
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cycle, err := LinearCooling(tini, tfin, rate)
			if err != nil {
				return err
			}
			res, err := e.integrate(cycle, false)
			if err != nil {
				return err
			}
			runs[i] = CoolingRun{
				Rate:     rate,
				Tini:     tini,
				Tfin:     tfin,
				Events:   res.Events,
				Final:    res.Final,
				Hardness: res.Hardness.Total,
			}
			log.WithFields(logrus.Fields{"rate": rate, "events": len(res.Events)}).Trace("cooling run done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug("cooling sweep done")
	return runs, nil
}

// CCT sweeps constant cooling rates from tini down to just below Ms,
// which is enough for every diffusional crossing and the martensite start
func (e *Engine) CCT(ctx context.Context, tini float64, rates []float64) ([]CoolingRun, error) {
	tfin := math.Min(e.model.Martensite().Ms-1, tini)
	return e.Sweep(ctx, tini, tfin, rates)
}
