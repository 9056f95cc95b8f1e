package cmd

import (
	"fmt"

	"github.com/alexiusacademia/steelcct/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of steelcct",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("steelcct v%s\n", version.Version)
		fmt.Println("Steel Transformation Diagram Calculator")
		fmt.Printf("Build: %s (commit %s)\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
