package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/steelcct/internal/diagram"
	"github.com/alexiusacademia/steelcct/internal/hardness"
	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/alexiusacademia/steelcct/internal/transform"
	"github.com/spf13/cobra"
)

var (
	cycleAlloy       alloyFlags
	cycleTini        float64
	cycleDuration    float64
	cyclePhi         float64
	cyclePoints      string
	cycleAxis        string
	cycleShowASCII   bool
	cycleExportFile  string
	cycleOverlayFile string
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Compute the phase fractions along a thermal cycle",
	Long: `Integrate the phase fractions of a steel along a thermal cycle with the
additivity rule and estimate the resulting Vickers hardness.

The cycle is either a linear cooling from --tini at --phi for --time
seconds (--phi 0 holds isothermally at --tini), or an explicit list of
time:temperature points given with --points.

Examples:
  # Cool a 0.4% C steel from 900 °C at 20 °C/s for 45 s
  steelcct cycle --c 0.4 --tini 900 --phi 20 --time 45

  # Isothermal hold at 500 °C for one hour
  steelcct cycle --preset 4140 --tini 500 --phi 0 --time 3600

  # Explicit cycle, fractions plotted against temperature
  steelcct cycle --c 0.4 --points "0:900,10:700,60:700,80:25" --axis T --diagram`,
	Run: runCycle,
}

func init() {
	rootCmd.AddCommand(cycleCmd)

	addAlloyFlags(cycleCmd, &cycleAlloy)
	cycleCmd.Flags().Float64Var(&cycleTini, "tini", 900, "Initial temperature (°C)")
	cycleCmd.Flags().Float64Var(&cycleDuration, "time", 45, "Cycle duration (s)")
	cycleCmd.Flags().Float64Var(&cyclePhi, "phi", 20, "Cooling rate (°C/s, 0 = isothermal)")
	cycleCmd.Flags().StringVar(&cyclePoints, "points", "", "Explicit cycle as comma separated time:temperature pairs")
	cycleCmd.Flags().StringVar(&cycleAxis, "axis", "t", "Abscissa of the fraction diagram (t or T, default T when cooling)")

	// Diagram options
	cycleCmd.Flags().BoolVar(&cycleShowASCII, "diagram", false, "Show ASCII phase fraction diagram")
	cycleCmd.Flags().StringVarP(&cycleExportFile, "output", "o", "", "Export phase fraction diagram to file (png, svg, pdf)")
	cycleCmd.Flags().StringVar(&cycleOverlayFile, "overlay-output", "", "Export the cycle drawn over the TTT (isothermal) or CCT diagram (png, svg, pdf)")
}

func runCycle(cmd *cobra.Command, args []string) {
	a, name, err := cycleAlloy.build(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	cycle, err := buildCycle()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	isothermal := isIsothermal(cycle)

	// Isothermal holds read best against time, coolings against temperature
	axis := diagram.TemperatureAxis
	if isothermal {
		axis = diagram.TimeAxis
	}
	if cmd.Flags().Changed("axis") {
		if axis, err = parseAxis(cycleAxis); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	e := newEngine(a)
	res, err := e.Integrate(cycle)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PHASE FRACTIONS ALONG A THERMAL CYCLE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printAlloy(a, name)

	fmt.Println("THERMAL CYCLE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Points:\t%d\n", cycle.Len())
	fmt.Fprintf(w, "  Duration:\t%.4g s\n", cycle.Duration())
	fmt.Fprintf(w, "  Temperature:\t%.1f → %.1f °C\n", cycle.Temp[0], cycle.Temp[cycle.Len()-1])
	fmt.Fprintf(w, "  Rate at %.0f °C:\t%.4g °C/s\n", hardness.ReferenceTemperature, res.Rate)
	w.Flush()
	fmt.Println()

	fmt.Println("TRANSFORMATION EVENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if len(res.Events) == 0 {
		fmt.Println("  No transformation started.")
	} else {
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Phase\tEvent\tTime (s)\tTemperature (°C)\n")
		fmt.Fprintf(w, "  ─────\t─────\t────────\t────────────────\n")
		for _, ev := range res.Events {
			fmt.Fprintf(w, "  %s\t%s\t%.4g\t%.1f\n", ev.Phase.Title(), ev.Kind, ev.Time, ev.Temp)
		}
		w.Flush()
	}
	fmt.Println()

	fmt.Println("FINAL MICROSTRUCTURE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range kinetics.Phases {
		fmt.Fprintf(w, "  %s:\t%.4f\n", p.Title(), res.Final.Get(p))
	}
	w.Flush()
	fmt.Println()

	h := res.Hardness
	lines := []string{
		fmt.Sprintf("Martensite HV:        %.0f", h.Martensite),
		fmt.Sprintf("Bainite HV:           %.0f", h.Bainite),
		fmt.Sprintf("Ferrite+pearlite HV:  %.0f", h.FerritePearlite),
		fmt.Sprintf("Mixture HV:           %.0f", h.Total),
	}
	fmt.Print(diagram.DrawSummaryBox("Hardness (Maynier)", lines))
	fmt.Println()

	fractions := diagram.Fractions(a.Title(), res, axis)
	if cycleShowASCII {
		fmt.Println("PHASE FRACTIONS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawASCII(fractions, 70, 15))
		fmt.Println()
	}
	export(fractions, cycleExportFile)

	if cycleOverlayFile == "" {
		return
	}
	overlay := diagram.TTT(e.Model(), appConfig.TTTPoints)
	if !isothermal {
		runs, _, err := pairedCCT(cmd.Context(), e, overlay, cycle.Temp[0], appConfig.CCTRates)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		overlay = diagram.CCT(e.Model(), runs)
	}
	overlay.Series = append(overlay.Series, diagram.CycleOverlay(cycle))
	export(overlay, cycleOverlayFile)
}

// buildCycle turns the cycle flags into a thermal cycle
func buildCycle() (*transform.Cycle, error) {
	if cyclePoints != "" {
		return parsePoints(cyclePoints)
	}
	if cyclePhi == 0 {
		return transform.Isothermal(cycleTini, cycleDuration)
	}
	return transform.LinearCooling(cycleTini, cycleTini-cyclePhi*cycleDuration, cyclePhi)
}

func isIsothermal(c *transform.Cycle) bool {
	for _, T := range c.Temp {
		if T != c.Temp[0] {
			return false
		}
	}
	return true
}

// parsePoints reads "t0:T0,t1:T1,..."
func parsePoints(s string) (*transform.Cycle, error) {
	var time, temp []float64
	for _, pair := range strings.Split(s, ",") {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid cycle point %q, expected time:temperature", pair)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid time in %q: %w", pair, err)
		}
		T, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid temperature in %q: %w", pair, err)
		}
		time = append(time, t)
		temp = append(temp, T)
	}
	return transform.NewCycle(time, temp)
}

func parseAxis(s string) (diagram.Axis, error) {
	switch s {
	case "t", "time":
		return diagram.TimeAxis, nil
	case "T", "temp", "temperature":
		return diagram.TemperatureAxis, nil
	}
	return 0, fmt.Errorf("invalid axis %q, expected t or T", s)
}
