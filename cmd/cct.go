package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/steelcct/internal/diagram"
	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/alexiusacademia/steelcct/internal/transform"
	"github.com/spf13/cobra"
)

var (
	cctAlloy      alloyFlags
	cctTini       float64
	cctPhiMin     float64
	cctPhiMax     float64
	cctRates      int
	cctShowASCII  bool
	cctExportFile string
)

var cctCmd = &cobra.Command{
	Use:   "cct",
	Short: "Compute the continuous cooling CCT diagram",
	Long: `Compute the Continuous-Cooling-Transformation diagram of a steel by
integrating constant-rate coolings from --tini with the additivity rule.

The cooling rate range defaults to the one that covers the time window
of the TTT diagram. Cooling runs are computed concurrently.

Examples:
  # CCT diagram of a 0.4% C steel
  steelcct cct --c 0.4 --gs 7 -o cct.png

  # Explicit cooling rate range with 20 runs
  steelcct cct --preset 4340 --phi-min 0.01 --phi-max 100 --rates 20`,
	Run: runCCT,
}

func init() {
	rootCmd.AddCommand(cctCmd)

	addAlloyFlags(cctCmd, &cctAlloy)
	cctCmd.Flags().Float64Var(&cctTini, "tini", 900, "Initial (austenitizing) temperature (°C)")
	cctCmd.Flags().Float64Var(&cctPhiMin, "phi-min", 0, "Slowest cooling rate (°C/s, default from TTT window)")
	cctCmd.Flags().Float64Var(&cctPhiMax, "phi-max", 0, "Fastest cooling rate (°C/s, default from TTT window)")
	cctCmd.Flags().IntVar(&cctRates, "rates", 0, "Number of cooling rates (default from config cct.rates)")

	// Diagram options
	cctCmd.Flags().BoolVar(&cctShowASCII, "diagram", false, "Show ASCII CCT diagram")
	cctCmd.Flags().StringVarP(&cctExportFile, "output", "o", "", "Export CCT diagram to file (png, svg, pdf)")
}

func runCCT(cmd *cobra.Command, args []string) {
	a, name, err := cctAlloy.build(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	e := newEngine(a)

	n := appConfig.CCTRates
	if cctRates > 0 {
		n = cctRates
	}

	var (
		runs  []transform.CoolingRun
		rates []float64
	)
	if cctPhiMin > 0 && cctPhiMax > 0 {
		rates, err = transform.RateSpan(cctPhiMin, cctPhiMax, n)
		if err == nil {
			runs, err = e.CCT(cmd.Context(), cctTini, rates)
		}
	} else if cmd.Flags().Changed("phi-min") || cmd.Flags().Changed("phi-max") {
		err = fmt.Errorf("--phi-min and --phi-max must both be positive")
	} else {
		runs, rates, err = pairedCCT(cmd.Context(), e, diagram.TTT(e.Model(), appConfig.TTTPoints), cctTini, n)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	cct := diagram.CCT(e.Model(), runs)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     CONTINUOUS-COOLING-TRANSFORMATION DIAGRAM")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printAlloy(a, name)
	printCCT(runs, rates, cctTini)

	if cctShowASCII {
		fmt.Println("CCT DIAGRAM:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawASCII(cct, 70, 20))
		fmt.Println()
	}

	export(cct, cctExportFile)
}

func printCCT(runs []transform.CoolingRun, rates []float64, tini float64) {
	fmt.Println("COOLING RUNS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Tini = %.0f °C, %d rates from %.3g to %.3g °C/s\n", tini, len(rates), rates[0], rates[len(rates)-1])
	fmt.Println()

	writeRuns(os.Stdout, runs)
	fmt.Println()
}

// writeRuns tabulates the phase fractions each run reaches at its final
// temperature. Runs end just below Ms, so fast rows still hold austenite.
func writeRuns(out io.Writer, runs []transform.CoolingRun) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Rate (°C/s)\tEnd (°C)\tFerrite\tPearlite\tBainite\tMartensite\tAustenite\tStarts (°C)\n")
	fmt.Fprintf(w, "  ───────────\t────────\t───────\t────────\t───────\t──────────\t─────────\t───────────\n")
	for _, run := range runs {
		f := run.Final
		fmt.Fprintf(w, "  %.3g\t%.0f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%s\n",
			run.Rate, run.Tfin, f.Ferrite, f.Pearlite, f.Bainite, f.Martensite, f.Austenite, startTemps(run))
	}
	w.Flush()
}

// startTemps lists the start temperature of every phase that began forming
func startTemps(run transform.CoolingRun) string {
	var parts []string
	for _, p := range []kinetics.Phase{kinetics.Ferrite, kinetics.Pearlite, kinetics.Bainite, kinetics.Martensite} {
		if ev, ok := run.Event(p, transform.Start); ok {
			parts = append(parts, fmt.Sprintf("%c:%.0f", p.Title()[0], ev.Temp))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
