package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/pkg/supabase"
)

// PostgREST caps result sets, so lists are read page by page
const supabasePageSize = 1000

const (
	remindersTable   = "reminders"
	logsTable        = "activity_logs"
	idempotencyTable = "idempotency_keys"
)

// NewSupabase builds repositories over Supabase tables with the same
// layout as the sqlite schema
func NewSupabase(client *supabase.Client) *Repositories {
	reminders := &supabaseReminderRepository{client: client}
	logs := &supabaseActivityLogRepository{client: client}
	return &Repositories{
		Reminders:   reminders,
		Logs:        logs,
		Idempotency: &supabaseIdempotencyRepository{client: client},
		Snapshots:   &supabaseSnapshotReader{reminders: reminders, logs: logs},
	}
}

type supabaseReminderRepository struct {
	client *supabase.Client
}

func reminderRow(r *models.Reminder) map[string]any {
	return map[string]any{
		"title":                r.Title,
		"description":          r.Description,
		"category":             r.Category,
		"scheduled_date":       r.ScheduledDate,
		"scheduled_time":       r.ScheduledTime,
		"repeat_type":          r.RepeatType,
		"repeat_config":        r.RepeatConfig,
		"advance_reminder_min": r.AdvanceReminderMin,
		"is_active":            r.IsActive,
	}
}

func (r *supabaseReminderRepository) Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	data := reminderRow(reminder)
	data["created_at"] = reminder.CreatedAt

	body, err := r.client.Insert(ctx, remindersTable, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return firstRow[models.Reminder](body, "reminder")
}

func (r *supabaseReminderRepository) GetByID(ctx context.Context, id int64) (*models.Reminder, error) {
	body, err := r.client.Query(ctx, remindersTable, map[string]string{
		"id": fmt.Sprintf("eq.%d", id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}

	var reminders []models.Reminder
	if err := json.Unmarshal(body, &reminders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reminders: %w", err)
	}
	if len(reminders) == 0 {
		return nil, fmt.Errorf("reminder %d: %w", id, ErrNotFound)
	}
	return &reminders[0], nil
}

func (r *supabaseReminderRepository) List(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := queryAll[models.Reminder](ctx, r.client, remindersTable, nil, "id.asc")
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

func (r *supabaseReminderRepository) Update(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	body, err := r.client.Update(ctx, remindersTable, strconv.FormatInt(reminder.ID, 10), reminderRow(reminder))
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	updated, err := firstRow[models.Reminder](body, "reminder")
	if err != nil {
		return nil, fmt.Errorf("reminder %d: %w", reminder.ID, ErrNotFound)
	}
	return updated, nil
}

func (r *supabaseReminderRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if err := r.client.Delete(ctx, remindersTable, strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

func (r *supabaseReminderRepository) DeleteAll(ctx context.Context) error {
	if err := r.client.DeleteWhere(ctx, remindersTable, map[string]string{"id": "gte.0"}); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}
	return nil
}

type supabaseActivityLogRepository struct {
	client *supabase.Client
}

func (r *supabaseActivityLogRepository) Append(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error) {
	data := map[string]any{
		"reminder_id":    log.ReminderID,
		"action":         log.Action,
		"timestamp":      log.Timestamp,
		"scheduled_time": log.ScheduledTime,
	}

	body, err := r.client.Insert(ctx, logsTable, data)
	if err != nil {
		return nil, fmt.Errorf("failed to append activity log: %w", err)
	}
	return firstRow[models.ActivityLog](body, "activity log")
}

func (r *supabaseActivityLogRepository) List(ctx context.Context) ([]models.ActivityLog, error) {
	logs, err := queryAll[models.ActivityLog](ctx, r.client, logsTable, nil, "timestamp.asc,id.asc")
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, nil
}

func (r *supabaseActivityLogRepository) ListByReminder(ctx context.Context, reminderID int64) ([]models.ActivityLog, error) {
	filter := map[string]string{"reminder_id": fmt.Sprintf("eq.%d", reminderID)}
	logs, err := queryAll[models.ActivityLog](ctx, r.client, logsTable, filter, "timestamp.asc,id.asc")
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, nil
}

func (r *supabaseActivityLogRepository) DeleteAll(ctx context.Context) error {
	if err := r.client.DeleteWhere(ctx, logsTable, map[string]string{"id": "gte.0"}); err != nil {
		return fmt.Errorf("failed to clear activity logs: %w", err)
	}
	return nil
}

type supabaseIdempotencyRepository struct {
	client *supabase.Client
}

func (r *supabaseIdempotencyRepository) Get(ctx context.Context, key, route string) (*models.IdempotencyKey, error) {
	body, err := r.client.Query(ctx, idempotencyTable, map[string]string{
		"key":   "eq." + key,
		"route": "eq." + route,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query idempotency key: %w", err)
	}

	var rows []struct {
		Key          string          `json:"key"`
		Route        string          `json:"route"`
		ResponseBody json.RawMessage `json:"response_body"`
		StatusCode   int             `json:"status_code"`
		CreatedAt    time.Time       `json:"created_at"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency keys: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &models.IdempotencyKey{
		Key:          row.Key,
		Route:        row.Route,
		ResponseBody: []byte(row.ResponseBody),
		StatusCode:   row.StatusCode,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (r *supabaseIdempotencyRepository) Store(ctx context.Context, key, route string, responseBody []byte, statusCode int) error {
	data := map[string]any{
		"key":           key,
		"route":         route,
		"response_body": json.RawMessage(responseBody),
		"status_code":   statusCode,
	}

	if _, err := r.client.Upsert(ctx, idempotencyTable, data, "key,route"); err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}
	return nil
}

// supabaseSnapshotReader fetches both tables concurrently. PostgREST has no
// multi-request transaction, so logs are fetched after the reminder list has
// been requested and a reminder created in between may be missing; such logs
// fall back to the unknown category.
type supabaseSnapshotReader struct {
	reminders *supabaseReminderRepository
	logs      *supabaseActivityLogRepository
}

func (r *supabaseSnapshotReader) Snapshot(ctx context.Context) (*Dataset, error) {
	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reminders, err := r.reminders.List(gctx)
		ds.Reminders = reminders
		return err
	})
	g.Go(func() error {
		logs, err := r.logs.List(gctx)
		ds.Logs = logs
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func queryAll[T any](ctx context.Context, client *supabase.Client, table string, filter map[string]string, order string) ([]T, error) {
	var all []T
	for offset := 0; ; offset += supabasePageSize {
		query := map[string]string{
			"order":  order,
			"limit":  strconv.Itoa(supabasePageSize),
			"offset": strconv.Itoa(offset),
		}
		for k, v := range filter {
			query[k] = v
		}

		body, err := client.Query(ctx, table, query)
		if err != nil {
			return nil, err
		}

		var page []T
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", table, err)
		}
		all = append(all, page...)
		if len(page) < supabasePageSize {
			return all, nil
		}
	}
}

func firstRow[T any](body []byte, what string) (*T, error) {
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", what, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no %s returned", what)
	}
	return &rows[0], nil
}
