package transform

import (
	"fmt"
	"math"
)

// Cycle is a thermal path: temperature samples (°C) at strictly increasing
// times (s). Temperature is linear between samples.
type Cycle struct {
	Time []float64
	Temp []float64
}

// NewCycle validates and copies a thermal path
func NewCycle(time, temp []float64) (*Cycle, error) {
	if len(time) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidCycle)
	}
	if len(time) != len(temp) {
		return nil, fmt.Errorf("%w: %d times but %d temperatures", ErrInvalidCycle, len(time), len(temp))
	}
	for i := range time {
		if !finite(time[i]) || !finite(temp[i]) {
			return nil, fmt.Errorf("%w: sample %d is not finite", ErrInvalidCycle, i)
		}
		if time[i] < 0 {
			return nil, fmt.Errorf("%w: negative time %g s at sample %d", ErrInvalidCycle, time[i], i)
		}
		if i > 0 && time[i] <= time[i-1] {
			return nil, fmt.Errorf("%w: time not strictly increasing at sample %d", ErrInvalidCycle, i)
		}
	}

	c := &Cycle{
		Time: make([]float64, len(time)),
		Temp: make([]float64, len(temp)),
	}
	copy(c.Time, time)
	copy(c.Temp, temp)
	return c, nil
}

// LinearCooling cools from tini to tfin at a constant rate (°C/s)
func LinearCooling(tini, tfin, rate float64) (*Cycle, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, &RateError{Rate: rate}
	}
	if tfin > tini {
		return nil, fmt.Errorf("%w: final temperature %g°C above initial %g°C", ErrInvalidCycle, tfin, tini)
	}
	if tfin == tini {
		return NewCycle([]float64{0}, []float64{tini})
	}
	return NewCycle([]float64{0, (tini - tfin) / rate}, []float64{tini, tfin})
}

// Isothermal holds temperature T for duration seconds
func Isothermal(T, duration float64) (*Cycle, error) {
	if duration == 0 {
		return NewCycle([]float64{0}, []float64{T})
	}
	return NewCycle([]float64{0, duration}, []float64{T, T})
}

// Len returns the number of samples
func (c *Cycle) Len() int { return len(c.Time) }

// Duration returns the time spanned by the cycle
func (c *Cycle) Duration() float64 {
	return c.Time[len(c.Time)-1] - c.Time[0]
}

// RateAt returns the cooling rate (°C/s, positive when cooling) of the
// segment between sample i and i+1
func (c *Cycle) RateAt(i int) float64 {
	if i < 0 || i+1 >= len(c.Time) {
		return 0
	}
	return (c.Temp[i] - c.Temp[i+1]) / (c.Time[i+1] - c.Time[i])
}

// Cooling reports whether temperature never increases along the cycle
func (c *Cycle) Cooling() bool {
	for i := 1; i < len(c.Temp); i++ {
		if c.Temp[i] > c.Temp[i-1] {
			return false
		}
	}
	return true
}

// CharacteristicRate returns the cooling rate of the first segment that
// cools through T. Cycles that never cross T report their mean cooling
// rate; heating or isothermal cycles report 0.
func (c *Cycle) CharacteristicRate(T float64) float64 {
	for i := 0; i+1 < len(c.Temp); i++ {
		if c.Temp[i] >= T && c.Temp[i+1] <= T && c.Temp[i] > c.Temp[i+1] {
			return c.RateAt(i)
		}
	}
	if len(c.Time) < 2 {
		return 0
	}
	mean := (c.Temp[0] - c.Temp[len(c.Temp)-1]) / c.Duration()
	return math.Max(mean, 0)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
