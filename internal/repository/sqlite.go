package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS reminders (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	title                TEXT    NOT NULL,
	description          TEXT    NOT NULL DEFAULT '',
	category             TEXT    NOT NULL,
	scheduled_date       TEXT    NOT NULL,
	scheduled_time       TEXT    NOT NULL,
	repeat_type          TEXT    NOT NULL DEFAULT 'none',
	repeat_config        TEXT,
	advance_reminder_min INTEGER NOT NULL DEFAULT 0,
	is_active            INTEGER NOT NULL DEFAULT 1,
	created_at           INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS activity_logs (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	reminder_id    INTEGER NOT NULL,
	action         TEXT    NOT NULL,
	timestamp      INTEGER NOT NULL,
	scheduled_time INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_logs_timestamp ON activity_logs (timestamp);
CREATE INDEX IF NOT EXISTS idx_activity_logs_reminder ON activity_logs (reminder_id);

CREATE TABLE IF NOT EXISTS idempotency_keys (
	key           TEXT    NOT NULL,
	route         TEXT    NOT NULL,
	response_body BLOB    NOT NULL,
	status_code   INTEGER NOT NULL,
	created_at    INTEGER NOT NULL,
	PRIMARY KEY (key, route)
);
`

const (
	reminderColumns = `id, title, description, category, scheduled_date, scheduled_time,
		repeat_type, repeat_config, advance_reminder_min, is_active, created_at`
	logColumns = `id, reminder_id, action, timestamp, scheduled_time`
)

// OpenSQLite opens (or creates) the database at path and ensures the schema
// exists. ":memory:" gives a private in-process database.
func OpenSQLite(ctx context.Context, path string) (*Repositories, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// every pooled connection would get its own empty in-memory database
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Repositories{
		Reminders:   &sqliteReminderRepository{db: db},
		Logs:        &sqliteActivityLogRepository{db: db},
		Idempotency: &sqliteIdempotencyRepository{db: db},
		Snapshots:   &sqliteSnapshotReader{db: db},
		close:       db.Close,
	}, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type sqliteReminderRepository struct {
	db *sql.DB
}

func (r *sqliteReminderRepository) Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	repeatConfig, err := encodeRepeatConfig(reminder.RepeatConfig)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (title, description, category, scheduled_date, scheduled_time,
			repeat_type, repeat_config, advance_reminder_min, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, reminder.Title, reminder.Description, string(reminder.Category), reminder.ScheduledDate,
		reminder.ScheduledTime, string(reminder.RepeatType), repeatConfig,
		reminder.AdvanceReminderMin, reminder.IsActive, reminder.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reminder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted ID: %w", err)
	}

	created := *reminder
	created.ID = id
	return &created, nil
}

func (r *sqliteReminderRepository) GetByID(ctx context.Context, id int64) (*models.Reminder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id)

	reminder, err := scanReminder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reminder %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return reminder, nil
}

func (r *sqliteReminderRepository) List(ctx context.Context) ([]models.Reminder, error) {
	return listReminders(ctx, r.db)
}

func (r *sqliteReminderRepository) Update(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	repeatConfig, err := encodeRepeatConfig(reminder.RepeatConfig)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE reminders SET title = ?, description = ?, category = ?, scheduled_date = ?,
			scheduled_time = ?, repeat_type = ?, repeat_config = ?, advance_reminder_min = ?,
			is_active = ?
		WHERE id = ?
	`, reminder.Title, reminder.Description, string(reminder.Category), reminder.ScheduledDate,
		reminder.ScheduledTime, string(reminder.RepeatType), repeatConfig,
		reminder.AdvanceReminderMin, reminder.IsActive, reminder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("reminder %d: %w", reminder.ID, ErrNotFound)
	}
	return r.GetByID(ctx, reminder.ID)
}

func (r *sqliteReminderRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("reminder %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *sqliteReminderRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reminders`); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}
	return nil
}

type sqliteActivityLogRepository struct {
	db *sql.DB
}

func (r *sqliteActivityLogRepository) Append(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_logs (reminder_id, action, timestamp, scheduled_time)
		VALUES (?, ?, ?, ?)
	`, log.ReminderID, string(log.Action), log.Timestamp, log.ScheduledTime)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activity log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted ID: %w", err)
	}

	appended := *log
	appended.ID = id
	return &appended, nil
}

func (r *sqliteActivityLogRepository) List(ctx context.Context) ([]models.ActivityLog, error) {
	return listLogs(ctx, r.db)
}

func (r *sqliteActivityLogRepository) ListByReminder(ctx context.Context, reminderID int64) ([]models.ActivityLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+logColumns+` FROM activity_logs WHERE reminder_id = ? ORDER BY timestamp ASC, id ASC
	`, reminderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

func (r *sqliteActivityLogRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM activity_logs`); err != nil {
		return fmt.Errorf("failed to clear activity logs: %w", err)
	}
	return nil
}

type sqliteIdempotencyRepository struct {
	db *sql.DB
}

func (r *sqliteIdempotencyRepository) Get(ctx context.Context, key, route string) (*models.IdempotencyKey, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, route, response_body, status_code, created_at
		FROM idempotency_keys WHERE key = ? AND route = ?
	`, key, route)

	var (
		rec       models.IdempotencyKey
		createdAt int64
	)
	if err := row.Scan(&rec.Key, &rec.Route, &rec.ResponseBody, &rec.StatusCode, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query idempotency key: %w", err)
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &rec, nil
}

func (r *sqliteIdempotencyRepository) Store(ctx context.Context, key, route string, responseBody []byte, statusCode int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO idempotency_keys (key, route, response_body, status_code, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (key, route) DO NOTHING
	`, key, route, responseBody, statusCode, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}
	return nil
}

type sqliteSnapshotReader struct {
	db *sql.DB
}

// Snapshot reads both tables inside one transaction
func (r *sqliteSnapshotReader) Snapshot(ctx context.Context) (*Dataset, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	reminders, err := listReminders(ctx, tx)
	if err != nil {
		return nil, err
	}
	logs, err := listLogs(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &Dataset{Reminders: reminders, Logs: logs}, nil
}

func listReminders(ctx context.Context, q queryer) ([]models.Reminder, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+reminderColumns+` FROM reminders ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, *reminder)
	}
	return reminders, rows.Err()
}

func listLogs(ctx context.Context, q queryer) ([]models.ActivityLog, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+logColumns+` FROM activity_logs ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	return scanLogs(rows)
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanReminder(s scanner) (*models.Reminder, error) {
	var (
		r            models.Reminder
		category     string
		repeatType   string
		repeatConfig sql.NullString
	)
	err := s.Scan(&r.ID, &r.Title, &r.Description, &category, &r.ScheduledDate, &r.ScheduledTime,
		&repeatType, &repeatConfig, &r.AdvanceReminderMin, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return nil, err
	}

	r.Category, _ = models.ParseCategory(category)
	r.RepeatType = models.RepeatType(repeatType)
	if repeatConfig.Valid && repeatConfig.String != "" {
		var rc models.RepeatConfig
		if err := json.Unmarshal([]byte(repeatConfig.String), &rc); err != nil {
			return nil, fmt.Errorf("invalid repeat config for reminder %d: %w", r.ID, err)
		}
		r.RepeatConfig = &rc
	}
	return &r, nil
}

func scanLogs(rows *sql.Rows) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	for rows.Next() {
		var (
			l      models.ActivityLog
			action string
		)
		if err := rows.Scan(&l.ID, &l.ReminderID, &action, &l.Timestamp, &l.ScheduledTime); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		l.Action = models.Action(action)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func encodeRepeatConfig(rc *models.RepeatConfig) (sql.NullString, error) {
	if rc == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(rc)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode repeat config: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
