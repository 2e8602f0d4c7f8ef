package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/remindr/backend/internal/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the activity history as CSV",
	Long:  `Write every activity log joined to its reminder as CSV, to a file or stdout.`,
	RunE:  runExport,
}

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", `Output file; "-" for stdout (defaults to a dated file name)`)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	path := exportOutput
	if path == "" {
		path = a.export.Filename()
	}

	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	rows, err := a.export.WriteCSV(ctx, w)
	if err != nil {
		return err
	}

	if path != "-" {
		a.log.Info("export written", logger.String("path", path), logger.Int("rows", rows))
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", rows, path)
	}
	return nil
}
