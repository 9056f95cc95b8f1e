package alloy

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/steelcct/internal/chem"
)

var (
	// ErrInvalidComposition is returned for negative or non-finite wt% values
	ErrInvalidComposition = errors.New("invalid composition")

	// ErrUnknownPreset is returned when a preset grade does not exist
	ErrUnknownPreset = errors.New("unknown preset")
)

// CompositionError reports the offending element of an invalid composition
type CompositionError struct {
	Element chem.Element
	Value   float64
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("invalid composition: %s = %g wt%% (must be >= 0)", e.Element, e.Value)
}

func (e *CompositionError) Unwrap() error {
	return ErrInvalidComposition
}
