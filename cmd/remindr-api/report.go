package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/report"
	"github.com/JonnyWalker81/remindr/backend/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print an analytics report",
	Long:  `Compute an analytics snapshot over the stored reminders and print it.`,
	RunE:  runReport,
}

var (
	reportRange string
	reportJSON  bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportRange, "range", "r", "", "Trend range: 30d, 90d, 180d, ytd or all (defaults to config)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print the snapshot as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	rng := a.cfg.Analytics.Range()
	if reportRange != "" {
		if rng, err = models.ParseTrendRange(reportRange); err != nil {
			return err
		}
	}

	snap, err := a.analytics.Refresh(ctx, rng)
	if err != nil && !errors.Is(err, service.ErrStaleSnapshot) {
		return fmt.Errorf("failed to compute analytics: %w", err)
	}

	out := cmd.OutOrStdout()
	if reportJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return report.Render(out, snap)
}
