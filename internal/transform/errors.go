package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRate is returned for non-positive or non-finite cooling rates
	ErrInvalidRate = errors.New("invalid cooling rate")

	// ErrInvalidCycle is returned for malformed thermal cycles
	ErrInvalidCycle = errors.New("invalid thermal cycle")
)

// RateError reports the offending cooling rate of a sweep
type RateError struct {
	Rate float64 // °C/s
}

func (e *RateError) Error() string {
	return fmt.Sprintf("invalid cooling rate: %g °C/s (must be > 0)", e.Rate)
}

func (e *RateError) Unwrap() error {
	return ErrInvalidRate
}
