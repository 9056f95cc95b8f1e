package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/steelcct/internal/diagram"
	"github.com/alexiusacademia/steelcct/internal/hardness"
	"github.com/spf13/cobra"
)

var (
	hardnessAlloy      alloyFlags
	hardnessTini       float64
	hardnessTfin       float64
	hardnessRates      string
	hardnessShowASCII  bool
	hardnessExportFile string
	hardnessHVExport   string
)

var hardnessCmd = &cobra.Command{
	Use:   "hardness",
	Short: "Compute phase fractions and hardness versus cooling rate",
	Long: `Cool a steel linearly from --tini to --tfin at a series of cooling
rates and report the final phase fractions and the Vickers hardness
estimated with the Maynier regressions.

The default sweep uses 13 rates from 1000 °C/s down to 0.001 °C/s.

Examples:
  # Hardness sweep of a 0.4% C steel
  steelcct hardness --c 0.4 --gs 7

  # Custom rates with exported diagrams
  steelcct hardness --preset 4140 --rates 100,10,1,0.1 -o fractions.png --hv-output hv.png`,
	Run: runHardness,
}

func init() {
	rootCmd.AddCommand(hardnessCmd)

	addAlloyFlags(hardnessCmd, &hardnessAlloy)
	hardnessCmd.Flags().Float64Var(&hardnessTini, "tini", 900, "Initial (austenitizing) temperature (°C)")
	hardnessCmd.Flags().Float64Var(&hardnessTfin, "tfin", 25, "Final temperature (°C)")
	hardnessCmd.Flags().StringVar(&hardnessRates, "rates", "", "Comma separated cooling rates (°C/s, default 1000 ... 0.001)")

	// Diagram options
	hardnessCmd.Flags().BoolVar(&hardnessShowASCII, "diagram", false, "Show ASCII hardness diagram")
	hardnessCmd.Flags().StringVarP(&hardnessExportFile, "output", "o", "", "Export phase fraction diagram to file (png, svg, pdf)")
	hardnessCmd.Flags().StringVar(&hardnessHVExport, "hv-output", "", "Export hardness diagram to file (png, svg, pdf)")
}

func runHardness(cmd *cobra.Command, args []string) {
	a, name, err := hardnessAlloy.build(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	rates := diagram.DefaultHardnessRates
	if hardnessRates != "" {
		rates, err = parseRates(hardnessRates)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	e := newEngine(a)
	sw, err := diagram.HardnessSweep(cmd.Context(), e, hardnessTini, hardnessTfin, rates)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     HARDNESS VERSUS COOLING RATE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printAlloy(a, name)

	fmt.Printf("FINAL MICROSTRUCTURE AT %.0f °C (cooled from %.0f °C):\n", hardnessTfin, hardnessTini)
	fmt.Println("───────────────────────────────────────────────────────────────")
	c := a.Composition()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Rate (°C/s)\tFerrite\tPearlite\tBainite\tMartensite\tHvM\tHvB\tHvFP\tHV\n")
	fmt.Fprintf(w, "  ───────────\t───────\t────────\t───────\t──────────\t───\t───\t────\t──\n")
	for _, run := range sw.Runs {
		f := run.Final
		fmt.Fprintf(w, "  %.3g\t%.3f\t%.3f\t%.3f\t%.3f\t%.0f\t%.0f\t%.0f\t%.0f\n",
			run.Rate, f.Ferrite, f.Pearlite, f.Bainite, f.Martensite,
			hardness.MartensiteHV(c, run.Rate), hardness.BainiteHV(c, run.Rate), hardness.FerritePearliteHV(c, run.Rate),
			run.Hardness)
	}
	w.Flush()
	fmt.Println()

	if hardnessShowASCII {
		fmt.Println("HARDNESS DIAGRAM:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		fmt.Println(diagram.DrawASCII(sw.Hardness, 70, 15))
		fmt.Println()
	}

	export(sw.Fractions, hardnessExportFile)
	export(sw.Hardness, hardnessHVExport)
}

// parseRates reads a comma separated list of cooling rates
func parseRates(s string) ([]float64, error) {
	var rates []float64
	for _, field := range strings.Split(s, ",") {
		r, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cooling rate %q: %w", field, err)
		}
		rates = append(rates, r)
	}
	return rates, nil
}
