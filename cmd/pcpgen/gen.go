package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Forest904/PCP-Pattern-Pursuit/internal/puzzle"
	"github.com/Forest904/PCP-Pattern-Pursuit/internal/share"
)

var (
	genPreset      string
	genCount       int
	genSeed        string
	genSeedPrefix  string
	genWorkers     int
	genUnsolvable  bool
	genWithAnswers bool
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate puzzle instances as JSON lines",
		Long: `Generate one or more puzzle instances and print each as a JSON line.

Examples:
  pcpgen gen --preset medium
  pcpgen gen -n 100 --seed-prefix bench- --workers 8
  pcpgen gen --preset hard --unsolvable --answers`,
		RunE: runGen,
	}

	genCmd.Flags().StringVarP(&genPreset, "preset", "p", "easy", "difficulty preset: easy, medium, hard, expert")
	genCmd.Flags().IntVarP(&genCount, "number", "n", 1, "number of puzzles to generate")
	genCmd.Flags().StringVar(&genSeed, "seed", "", "explicit seed (single puzzle only)")
	genCmd.Flags().StringVar(&genSeedPrefix, "seed-prefix", "", "derive seeds as <prefix><index>")
	genCmd.Flags().IntVar(&genWorkers, "workers", 4, "parallel generation workers")
	genCmd.Flags().BoolVar(&genUnsolvable, "unsolvable", false, "allow intended-unsolvable instances")
	genCmd.Flags().BoolVar(&genWithAnswers, "answers", false, "include the solution ordering in output")

	rootCmd.AddCommand(genCmd)
}

// genOutput is the JSON shape printed per instance. Solution stays empty
// unless --answers was given, so batch output is safe to hand to players.
type genOutput struct {
	Seed      string          `json:"seed"`
	Preset    string          `json:"preset"`
	Settings  puzzle.Settings `json:"settings"`
	Tiles     []puzzle.Tile   `json:"tiles"`
	Solvable  bool            `json:"solvable"`
	ShareCode string          `json:"shareCode,omitempty"`
	Solution  []puzzle.TileID `json:"solution,omitempty"`
}

func runGen(cmd *cobra.Command, args []string) error {
	preset, err := puzzle.ParsePreset(genPreset)
	if err != nil {
		return err
	}
	if genCount < 1 {
		return fmt.Errorf("number of puzzles must be positive, got %d", genCount)
	}
	if genSeed != "" && genCount > 1 {
		return fmt.Errorf("--seed pins a single instance; use --seed-prefix for batches")
	}

	var ov *puzzle.Overrides
	if genUnsolvable {
		allow := true
		ov = &puzzle.Overrides{AllowUnsolvable: &allow}
	}

	seeds := make([]string, genCount)
	for i := range seeds {
		switch {
		case genSeed != "":
			seeds[i] = genSeed
		case genSeedPrefix != "":
			seeds[i] = fmt.Sprintf("%s%d", genSeedPrefix, i)
		}
	}

	workers := genWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > genCount {
		workers = genCount
	}

	// All jobs are queued up front so workers can drain and exit on
	// their own; results land in a fixed slot per index to keep the
	// output order stable regardless of which worker got there first.
	jobs := make(chan int, genCount)
	for i := 0; i < genCount; i++ {
		jobs <- i
	}
	close(jobs)

	results := make([]*genOutput, genCount)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				inst, err := puzzle.Generate(preset, seeds[i], ov)
				if err != nil {
					return fmt.Errorf("instance %d: %w", i, err)
				}
				out := &genOutput{
					Seed:     inst.Seed,
					Preset:   string(inst.Preset),
					Settings: inst.Settings,
					Tiles:    inst.Tiles,
					Solvable: inst.Solvable,
				}
				if code, err := share.Encode(preset, inst.Seed, ov); err == nil {
					out.ShareCode = code
				}
				if genWithAnswers {
					out.Solution = inst.Solution()
				}
				results[i] = out
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for _, out := range results {
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}
