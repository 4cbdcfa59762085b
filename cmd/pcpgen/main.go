package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pcpgen",
	Short: "Generate and inspect Pattern Pursuit puzzles",
	Long: `pcpgen works the Pattern Pursuit generator from the command line:
batch-generate puzzle instances as JSON, or expand a share code back into
the puzzle it encodes.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
