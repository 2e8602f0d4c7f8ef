package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/analytics"
	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/metrics"
	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
)

type analyticsService struct {
	snapshots repository.SnapshotReader
	seq       *Sequencer
	clock     Clock
	loc       *time.Location
}

// NewAnalyticsService creates a new analytics service. Day boundaries follow
// loc unless a caller passes its own now.
func NewAnalyticsService(snapshots repository.SnapshotReader, clock Clock, loc *time.Location) AnalyticsService {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &analyticsService{
		snapshots: snapshots,
		seq:       &Sequencer{},
		clock:     clock,
		loc:       loc,
	}
}

func (s *analyticsService) Snapshot(ctx context.Context, rng models.TrendRange, now time.Time) (*models.AnalyticsSnapshot, error) {
	rng, err := resolveRange(rng)
	if err != nil {
		return nil, err
	}
	if now.IsZero() {
		now = s.clock().In(s.loc)
	}
	return s.compute(ctx, rng, now)
}

func (s *analyticsService) Refresh(ctx context.Context, rng models.TrendRange) (*models.AnalyticsSnapshot, error) {
	rng, err := resolveRange(rng)
	if err != nil {
		return nil, err
	}

	seq := s.seq.Next()
	snap, err := s.compute(ctx, rng, s.clock().In(s.loc))
	if err != nil {
		return nil, err
	}

	if !s.seq.Publish(seq, snap) {
		metrics.StaleResultsTotal.Inc()
		logger.Ctx(ctx).Debug("discarding stale analytics snapshot", logger.Uint64("seq", seq))
		return snap, ErrStaleSnapshot
	}
	return snap, nil
}

func (s *analyticsService) Latest() (*models.AnalyticsSnapshot, bool) {
	snap, _, ok := s.seq.Latest()
	return snap, ok
}

func (s *analyticsService) compute(ctx context.Context, rng models.TrendRange, now time.Time) (*models.AnalyticsSnapshot, error) {
	start := time.Now()

	ds, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics data: %w", err)
	}

	snap := analytics.Aggregate(analytics.Input{
		Reminders: ds.Reminders,
		Logs:      ds.Logs,
		Now:       now,
		Range:     rng,
	})

	took := time.Since(start)
	metrics.ObserveAggregation(string(snap.Range), string(snap.Granularity), took)
	logger.Ctx(ctx).Debug("analytics snapshot computed",
		logger.String("range", string(snap.Range)),
		logger.String("granularity", string(snap.Granularity)),
		logger.Int("logs", len(ds.Logs)),
		logger.Duration("took", took),
	)
	return &snap, nil
}

func resolveRange(rng models.TrendRange) (models.TrendRange, error) {
	r, err := models.ParseTrendRange(string(rng))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return r, nil
}
