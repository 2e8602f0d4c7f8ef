package service

import (
	"context"
	"io"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// Clock returns the current instant
type Clock func() time.Time

// ReminderService defines the interface for reminder business logic
type ReminderService interface {
	CreateReminder(ctx context.Context, req *models.CreateReminderRequest) (*models.Reminder, error)
	GetReminder(ctx context.Context, id int64) (*models.Reminder, error)
	ListReminders(ctx context.Context) ([]models.Reminder, error)
	UpdateReminder(ctx context.Context, id int64, req *models.UpdateReminderRequest) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, id int64) error
}

// ActivityService records and lists user responses to reminders
type ActivityService interface {
	LogActivity(ctx context.Context, req *models.LogActivityRequest) (*models.ActivityLog, error)
	ListLogs(ctx context.Context) ([]models.ActivityLog, error)
	ListReminderLogs(ctx context.Context, reminderID int64) ([]models.ActivityLog, error)
}

// AnalyticsService computes analytics snapshots over the stored data
type AnalyticsService interface {
	// Snapshot computes a snapshot measured from now without publishing it.
	// A zero now means the service clock in the configured timezone.
	Snapshot(ctx context.Context, rng models.TrendRange, now time.Time) (*models.AnalyticsSnapshot, error)
	// Refresh computes a snapshot and publishes it as the latest one unless
	// a newer Refresh started meanwhile, in which case ErrStaleSnapshot is
	// returned alongside the computed snapshot.
	Refresh(ctx context.Context, rng models.TrendRange) (*models.AnalyticsSnapshot, error)
	// Latest returns the most recently published snapshot
	Latest() (*models.AnalyticsSnapshot, bool)
}

// ExportService writes the activity history as CSV
type ExportService interface {
	WriteCSV(ctx context.Context, w io.Writer) (int, error)
	// Filename is the suggested attachment name for an export taken now
	Filename() string
}

// SeedService replaces stored data with generated sample data
type SeedService interface {
	Seed(ctx context.Context, seed uint64) (*SeedResult, error)
}
