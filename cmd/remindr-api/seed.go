package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace stored data with sample data",
	Long: `Delete every reminder and activity log, then generate sample reminders
with activity over the last 60 days. The same seed always produces the same data
for a given day.`,
	RunE: runSeed,
}

var seedValue uint64

func init() {
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "Random seed (defaults to the current time)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	seed := seedValue
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}

	result, err := a.seed.Seed(ctx, seed)
	if err != nil {
		return fmt.Errorf("failed to seed sample data: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d reminders and %d activity logs (seed %d)\n", result.Reminders, result.Logs, seed)
	return nil
}
