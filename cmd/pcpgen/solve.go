package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Forest904/PCP-Pattern-Pursuit/internal/puzzle"
	"github.com/Forest904/PCP-Pattern-Pursuit/internal/share"
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve <share-code>",
		Short: "Expand a share code and print the puzzle with its solution",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	preset, seed, ov, err := share.Decode(args[0])
	if err != nil {
		return fmt.Errorf("decode share code: %w", err)
	}
	inst, err := puzzle.Generate(preset, seed, ov)
	if err != nil {
		return fmt.Errorf("rebuild puzzle: %w", err)
	}

	out := genOutput{
		Seed:      inst.Seed,
		Preset:    string(inst.Preset),
		Settings:  inst.Settings,
		Tiles:     inst.Tiles,
		Solvable:  inst.Solvable,
		ShareCode: args[0],
		Solution:  inst.Solution(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
