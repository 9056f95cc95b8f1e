package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/steelcct/internal/diagram"
	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/spf13/cobra"
)

var (
	tttAlloy      alloyFlags
	tttTini       float64
	tttWithCCT    bool
	tttExportFile string
	tttCCTExport  string
)

var tttCmd = &cobra.Command{
	Use:   "ttt",
	Short: "Compute the isothermal TTT diagram",
	Long: `Compute the Time-Temperature-Transformation diagram of a steel: the
isothermal start (1%) and finish (99%) times of ferrite, pearlite and
bainite at every hold temperature of their band.

With --cct the continuous cooling diagram is computed for the cooling
rates that cover the same time window when cooling from --tini.

Examples:
  # TTT diagram of a 0.4% C steel exported as png
  steelcct ttt --c 0.4 --gs 7 -o ttt.png

  # TTT and paired CCT diagram of AISI 4140
  steelcct ttt --preset 4140 --cct -o ttt.png --cct-output cct.png`,
	Run: runTTT,
}

func init() {
	rootCmd.AddCommand(tttCmd)

	addAlloyFlags(tttCmd, &tttAlloy)
	tttCmd.Flags().Float64Var(&tttTini, "tini", 900, "Initial temperature of the paired CCT (°C)")
	tttCmd.Flags().BoolVar(&tttWithCCT, "cct", false, "Also compute the paired CCT diagram")

	// Diagram options
	tttCmd.Flags().StringVarP(&tttExportFile, "output", "o", "", "Export TTT diagram to file (png, svg, pdf)")
	tttCmd.Flags().StringVar(&tttCCTExport, "cct-output", "", "Export paired CCT diagram to file (png, svg, pdf)")
}

func runTTT(cmd *cobra.Command, args []string) {
	a, name, err := tttAlloy.build(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	e := newEngine(a)
	ttt := diagram.TTT(e.Model(), appConfig.TTTPoints)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     TIME-TEMPERATURE-TRANSFORMATION DIAGRAM")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printAlloy(a, name)
	printTTT(e.Model(), ttt)

	export(ttt, tttExportFile)

	if !tttWithCCT && tttCCTExport == "" {
		return
	}
	runs, rates, err := pairedCCT(cmd.Context(), e, ttt, tttTini, appConfig.CCTRates)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	cct := diagram.CCT(e.Model(), runs)
	printCCT(runs, rates, tttTini)
	export(cct, tttCCTExport)
}

func printTTT(m *kinetics.Model, ttt diagram.Diagram) {
	fmt.Println("TTT CURVE NOSES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Phase\tBand (°C)\tNose (°C)\tStart (s)\tFinish (s)\n")
	fmt.Fprintf(w, "  ─────\t─────────\t─────────\t─────────\t──────────\n")
	for _, c := range m.Curves() {
		b := c.Band()
		start, ok := ttt.Find(c.Phase(), diagram.StartCurve)
		if !ok {
			fmt.Fprintf(w, "  %s\t%.0f - %.0f\t-\t-\t-\n", c.Phase().Title(), b.Lower, b.Upper)
			continue
		}
		nose, _ := diagram.Nose(start)
		finish, _ := c.FinishTime(nose.Y)
		fmt.Fprintf(w, "  %s\t%.0f - %.0f\t%.0f\t%.3g\t%.3g\n", c.Phase().Title(), b.Lower, b.Upper, nose.Y, nose.X, finish)
	}
	w.Flush()
	fmt.Println()

	if tmin, tmax, ok := diagram.TimeRange(ttt); ok {
		fmt.Printf("  Time window: %.3g s to %.3g s\n", tmin, tmax)
		fmt.Println()
	}
}
