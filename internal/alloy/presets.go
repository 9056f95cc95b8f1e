package alloy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexiusacademia/steelcct/internal/chem"
)

// DefaultGrainSize is the ASTM grain size used when none is given
const DefaultGrainSize = 7.0

// Nominal compositions of common AISI/SAE grades (wt%)
var presets = map[string]chem.Composition{
	"1020": {C: 0.20, Mn: 0.45, Si: 0.20},
	"1040": {C: 0.40, Mn: 0.75, Si: 0.20},
	"1080": {C: 0.80, Mn: 0.75, Si: 0.20},
	"4140": {C: 0.40, Mn: 0.85, Si: 0.25, Cr: 0.95, Mo: 0.20},
	"4340": {C: 0.40, Mn: 0.70, Si: 0.25, Ni: 1.80, Cr: 0.80, Mo: 0.25},
	"5160": {C: 0.60, Mn: 0.85, Si: 0.25, Cr: 0.80},
	"8620": {C: 0.20, Mn: 0.80, Si: 0.25, Ni: 0.55, Cr: 0.50, Mo: 0.20},
}

// PresetNames returns the available preset grades, sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the nominal specification of a common grade.
// "AISI4140" and "4140" are equivalent.
func Preset(name string) (Spec, error) {
	key := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "AISI")
	key = strings.TrimPrefix(key, "SAE")
	c, ok := presets[key]
	if !ok {
		return Spec{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	return Spec{Name: "AISI " + key, GrainSize: DefaultGrainSize, Composition: c}, nil
}
