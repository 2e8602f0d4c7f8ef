package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/analytics"
	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/metrics"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
)

type exportService struct {
	snapshots repository.SnapshotReader
	clock     Clock
	loc       *time.Location
}

// NewExportService creates a new CSV export service
func NewExportService(snapshots repository.SnapshotReader, clock Clock, loc *time.Location) ExportService {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &exportService{snapshots: snapshots, clock: clock, loc: loc}
}

func (s *exportService) WriteCSV(ctx context.Context, w io.Writer) (int, error) {
	ds, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load export data: %w", err)
	}

	rows, err := analytics.WriteCSV(w, ds.Logs, ds.Reminders)
	metrics.ExportRowsTotal.Add(float64(rows))
	if err != nil {
		return rows, err
	}

	logger.Ctx(ctx).Info("activity exported", logger.Int("rows", rows))
	return rows, nil
}

func (s *exportService) Filename() string {
	return fmt.Sprintf("reminder-analytics-%s.csv", s.clock().In(s.loc).Format("2006-01-02"))
}
