package repository

import (
	"context"
	"errors"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// ReminderRepository defines the interface for reminder data access
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	GetByID(ctx context.Context, id int64) (*models.Reminder, error)
	List(ctx context.Context) ([]models.Reminder, error)
	// Update replaces every mutable column of the reminder with reminder.ID
	Update(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

// ActivityLogRepository is append-only: logs are never edited once written.
// Lists are ordered by timestamp, then id.
type ActivityLogRepository interface {
	Append(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error)
	List(ctx context.Context) ([]models.ActivityLog, error)
	ListByReminder(ctx context.Context, reminderID int64) ([]models.ActivityLog, error)
	DeleteAll(ctx context.Context) error
}

// IdempotencyRepository stores responses of mutating requests for replay
type IdempotencyRepository interface {
	// Get returns nil, nil when no record exists
	Get(ctx context.Context, key, route string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, key, route string, responseBody []byte, statusCode int) error
}

// Dataset is both collections as of a single read
type Dataset struct {
	Reminders []models.Reminder
	Logs      []models.ActivityLog
}

// SnapshotReader loads reminders and logs together so analytics never see
// one collection from before a write and the other from after it.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (*Dataset, error)
}

// Repositories bundles the repositories of one storage backend
type Repositories struct {
	Reminders   ReminderRepository
	Logs        ActivityLogRepository
	Idempotency IdempotencyRepository
	Snapshots   SnapshotReader

	close func() error
}

// Close releases the backend's resources
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}
