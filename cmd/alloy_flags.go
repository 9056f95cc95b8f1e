package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/steelcct/internal/alloy"
	"github.com/alexiusacademia/steelcct/internal/chem"
	"github.com/spf13/cobra"
)

// alloyFlags collects the alloy definition shared by every command: an
// alloy file, a preset grade or an explicit composition
type alloyFlags struct {
	grainSize float64
	wt        map[chem.Element]*float64
	file      string
	name      string
	preset    string
}

func addAlloyFlags(cmd *cobra.Command, f *alloyFlags) {
	cmd.Flags().Float64Var(&f.grainSize, "gs", alloy.DefaultGrainSize, "ASTM grain size")

	// Composition flags (wt%)
	f.wt = make(map[chem.Element]*float64, len(chem.Elements))
	for _, e := range chem.Elements {
		v := new(float64)
		f.wt[e] = v
		cmd.Flags().Float64Var(v, strings.ToLower(string(e)), 0, fmt.Sprintf("%s (wt%%)", e.Name()))
	}

	// Alloy sources
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Alloy file (json, yaml, ini)")
	cmd.Flags().StringVar(&f.name, "name", "", "Alloy name inside the alloy file (default: first)")
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "Preset grade ("+strings.Join(alloy.PresetNames(), ", ")+")")
}

// build resolves the flags into an alloy. Composition flags override the
// values of a file or preset; --gs overrides their grain size.
func (f *alloyFlags) build(cmd *cobra.Command) (*alloy.Alloy, string, error) {
	var spec alloy.Spec
	switch {
	case f.file != "" && f.preset != "":
		return nil, "", fmt.Errorf("--file and --preset are mutually exclusive")
	case f.file != "":
		specs, err := alloy.LoadFile(f.file)
		if err != nil {
			return nil, "", err
		}
		spec, err = alloy.Find(specs, f.name)
		if err != nil {
			return nil, "", err
		}
	case f.preset != "":
		var err error
		spec, err = alloy.Preset(f.preset)
		if err != nil {
			return nil, "", err
		}
	default:
		spec = alloy.Spec{GrainSize: f.grainSize}
	}

	for _, e := range chem.Elements {
		if cmd.Flags().Changed(strings.ToLower(string(e))) {
			spec.Composition = spec.Composition.With(e, *f.wt[e])
		}
	}
	if cmd.Flags().Changed("gs") {
		spec.GrainSize = f.grainSize
	}

	a, err := spec.Build()
	if err != nil {
		return nil, "", err
	}
	name := spec.Name
	if name == "" {
		name = a.Composition().String()
	}
	return a, name, nil
}
