package chem

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Element is the chemical symbol of an alloying element tracked by the model
type Element string

// Alloying elements, in the order they are reported
const (
	C  Element = "C"
	Si Element = "Si"
	Mn Element = "Mn"
	Ni Element = "Ni"
	Mo Element = "Mo"
	Cr Element = "Cr"
	V  Element = "V"
	Co Element = "Co"
	Cu Element = "Cu"
	Al Element = "Al"
	W  Element = "W"
)

// Elements lists every tracked element. Carbon comes first as the primary
// hardenability driver.
var Elements = []Element{C, Si, Mn, Ni, Mo, Cr, V, Co, Cu, Al, W}

var elementNames = map[Element]string{
	C:  "Carbon",
	Si: "Silicon",
	Mn: "Manganese",
	Ni: "Nickel",
	Mo: "Molybdenum",
	Cr: "Chromium",
	V:  "Vanadium",
	Co: "Cobalt",
	Cu: "Copper",
	Al: "Aluminium",
	W:  "Tungsten",
}

// Name returns the element's English name
func (e Element) Name() string {
	if n, ok := elementNames[e]; ok {
		return n
	}
	return string(e)
}

// ParseElement resolves a symbol case-insensitively ("mn", "MN" -> Mn)
func ParseElement(s string) (Element, bool) {
	s = strings.TrimSpace(s)
	for _, e := range Elements {
		if strings.EqualFold(string(e), s) {
			return e, true
		}
	}
	return "", false
}

// ErrUnknownElement is returned when a symbol is not a tracked element
var ErrUnknownElement = errors.New("unknown element")

// Composition holds the mass fraction of each alloying element in wt%.
// The balance is iron.
type Composition struct {
	C  float64 `json:"C" yaml:"C"`   // Carbon
	Si float64 `json:"Si" yaml:"Si"` // Silicon
	Mn float64 `json:"Mn" yaml:"Mn"` // Manganese
	Ni float64 `json:"Ni" yaml:"Ni"` // Nickel
	Mo float64 `json:"Mo" yaml:"Mo"` // Molybdenum
	Cr float64 `json:"Cr" yaml:"Cr"` // Chromium
	V  float64 `json:"V" yaml:"V"`   // Vanadium
	Co float64 `json:"Co" yaml:"Co"` // Cobalt
	Cu float64 `json:"Cu" yaml:"Cu"` // Copper
	Al float64 `json:"Al" yaml:"Al"` // Aluminium
	W  float64 `json:"W" yaml:"W"`   // Tungsten
}

func (c *Composition) field(e Element) *float64 {
	switch e {
	case C:
		return &c.C
	case Si:
		return &c.Si
	case Mn:
		return &c.Mn
	case Ni:
		return &c.Ni
	case Mo:
		return &c.Mo
	case Cr:
		return &c.Cr
	case V:
		return &c.V
	case Co:
		return &c.Co
	case Cu:
		return &c.Cu
	case Al:
		return &c.Al
	case W:
		return &c.W
	}
	return nil
}

// Get returns the wt% of an element; unknown elements read as 0
func (c Composition) Get(e Element) float64 {
	if p := c.field(e); p != nil {
		return *p
	}
	return 0
}

// With returns a copy of c with element e set to wt
func (c Composition) With(e Element, wt float64) Composition {
	if p := c.field(e); p != nil {
		*p = wt
	}
	return c
}

// FromMap builds a composition from a symbol -> wt% mapping.
// Missing elements default to 0; unknown symbols are rejected.
func FromMap(m map[string]float64) (Composition, error) {
	var c Composition
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e, ok := ParseElement(k)
		if !ok {
			return Composition{}, fmt.Errorf("%w %q", ErrUnknownElement, k)
		}
		c = c.With(e, m[k])
	}
	return c, nil
}

// Map returns the non-zero elements as a symbol -> wt% mapping
func (c Composition) Map() map[string]float64 {
	m := make(map[string]float64)
	for _, e := range Elements {
		if v := c.Get(e); v != 0 {
			m[string(e)] = v
		}
	}
	return m
}

// Invalid returns the first element whose value is negative or not finite
func (c Composition) Invalid() (Element, float64, bool) {
	for _, e := range Elements {
		v := c.Get(e)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return e, v, true
		}
	}
	return "", 0, false
}

// String formats the composition as "Fe-0.4C-0.75Mn", skipping zero elements
func (c Composition) String() string {
	var sb strings.Builder
	sb.WriteString("Fe")
	for _, e := range Elements {
		v := c.Get(e)
		if v == 0 {
			continue
		}
		sb.WriteString("-")
		sb.WriteString(strconv.FormatFloat(v, 'g', 3, 64))
		sb.WriteString(string(e))
	}
	return sb.String()
}
