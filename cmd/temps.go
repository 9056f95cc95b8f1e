package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/steelcct/internal/alloy"
	"github.com/alexiusacademia/steelcct/internal/chem"
	"github.com/alexiusacademia/steelcct/internal/diagram"
	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/spf13/cobra"
)

var (
	tempsAlloy       alloyFlags
	tempsListPresets bool
)

var tempsCmd = &cobra.Command{
	Use:   "temps",
	Short: "Calculate critical transformation temperatures",
	Long: `Calculate the critical temperatures of a steel from its composition:

  Ae3 - austenite/ferrite equilibrium boundary (Andrews)
  Ae1 - eutectoid temperature (Andrews)
  Bs  - bainite start (Kirkaldy and Venugopalan)
  Ms  - martensite start (Andrews)

Examples:
  # Plain carbon steel with 0.4% C
  steelcct temps --c 0.4 --mn 0.75

  # A preset grade
  steelcct temps --preset 4140

  # List the available presets
  steelcct temps --list-presets`,
	Run: runTemps,
}

func init() {
	rootCmd.AddCommand(tempsCmd)

	addAlloyFlags(tempsCmd, &tempsAlloy)
	tempsCmd.Flags().BoolVar(&tempsListPresets, "list-presets", false, "List the preset grades and exit")
}

func runTemps(cmd *cobra.Command, args []string) {
	if tempsListPresets {
		printPresets()
		return
	}

	a, name, err := tempsAlloy.build(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	m := kinetics.New(a)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     CRITICAL TEMPERATURES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printAlloy(a, name)

	t := a.Temperatures()
	fmt.Println("CRITICAL TEMPERATURES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ae3:\t%.1f °C\n", t.Ae3)
	fmt.Fprintf(w, "  Ae1:\t%.1f °C\n", t.Ae1)
	fmt.Fprintf(w, "  Bs:\t%.1f °C\n", t.Bs)
	fmt.Fprintf(w, "  Ms:\t%.1f °C\n", t.Ms)
	if mf, ok := m.Martensite().Temperature(kinetics.FinishFraction); ok {
		fmt.Fprintf(w, "  Mf (99%%):\t%.1f °C\n", mf)
	}
	fmt.Fprintf(w, "  Koistinen-Marburger α:\t%.5f 1/K\n", m.Martensite().Alpha)
	fmt.Fprintf(w, "  Equilibrium ferrite:\t%.3f\n", m.FerriteMax())
	w.Flush()
	fmt.Println()

	fmt.Println("STATUS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if err := t.Check(); err != nil {
		fmt.Printf("  ⚠ %v\n", err)
		fmt.Println("  The composition is outside the calibration range of the regressions.")
	} else {
		fmt.Println("  ✓ Ms < Bs < Ae1 ≤ Ae3")
	}
	fmt.Println()
}

// printAlloy prints the alloy header shared by every command
func printAlloy(a *alloy.Alloy, name string) {
	fmt.Println("ALLOY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name:\t%s\n", name)
	fmt.Fprintf(w, "  ASTM grain size:\t%g\n", a.GrainSize())
	c := a.Composition()
	for _, e := range chem.Elements {
		if v := c.Get(e); v != 0 {
			fmt.Fprintf(w, "  %s (%s):\t%.3f wt%%\n", e.Name(), e, v)
		}
	}
	w.Flush()
	fmt.Println()
}

func printPresets() {
	fmt.Println()
	fmt.Println("PRESET GRADES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	var lines []string
	for _, name := range alloy.PresetNames() {
		spec, err := alloy.Preset(name)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-10s %s", spec.Name, spec.Composition))
	}
	fmt.Print(diagram.DrawSummaryBox("Presets (ASTM grain size 7)", lines))
	fmt.Println()
}
