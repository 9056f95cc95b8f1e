package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexiusacademia/steelcct/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "steelcct",
	Short: "Steel transformation diagram calculator",
	Long: `steelcct - Steel Transformation Diagram Calculator

A CLI tool that models the microstructure of a steel during heat
treatment from its chemical composition and prior-austenite grain size.

This tool helps metallurgists compute:
  - Critical temperatures (Ae3, Ae1, Bs, Ms)
  - Time-Temperature-Transformation (TTT) diagrams
  - Continuous-Cooling-Transformation (CCT) diagrams
  - Phase fraction evolution along a thermal cycle
  - Vickers hardness as a function of cooling rate

Kinetics follow the Li et al. (1998) rate expressions combined with the
additivity rule; hardness follows Maynier et al. (1978).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.Root().PersistentFlags())
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   steelcct v%-46s║\n", version.Version)
		fmt.Println("  ║   Steel Transformation Diagram Calculator                 ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Computes TTT and CCT diagrams, phase fractions and hardness")
		fmt.Println("  of low-alloy steels from composition and grain size.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Critical temperatures from empirical regressions")
		fmt.Println("    • Isothermal (TTT) start and finish curves")
		fmt.Println("    • Continuous cooling (CCT) curves via the additivity rule")
		fmt.Println("    • Phase fractions along arbitrary thermal cycles")
		fmt.Println("    • Hardness versus cooling rate")
		fmt.Println()
		fmt.Println("  Use 'steelcct --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels running sweeps.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().Int("workers", 0, "Concurrent cooling runs per sweep (0 = one per CPU)")
	rootCmd.PersistentFlags().Float64("max-temp-step", 1.0, "Largest temperature change per integration step (°C)")
}
