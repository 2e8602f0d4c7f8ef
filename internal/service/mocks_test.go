package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
)

// mockReminderRepository is an in-memory ReminderRepository
type mockReminderRepository struct {
	mu        sync.Mutex
	reminders map[int64]models.Reminder
	nextID    int64
}

func newMockReminderRepository(seed ...models.Reminder) *mockReminderRepository {
	m := &mockReminderRepository{reminders: make(map[int64]models.Reminder)}
	for _, r := range seed {
		m.reminders[r.ID] = r
		m.nextID = max(m.nextID, r.ID)
	}
	return m
}

func (m *mockReminderRepository) Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	created := *reminder
	created.ID = m.nextID
	m.reminders[created.ID] = created
	return &created, nil
}

func (m *mockReminderRepository) GetByID(ctx context.Context, id int64) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reminders[id]
	if !ok {
		return nil, fmt.Errorf("reminder %d: %w", id, repository.ErrNotFound)
	}
	return &r, nil
}

func (m *mockReminderRepository) List(ctx context.Context) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Reminder, 0, len(m.reminders))
	for _, r := range m.reminders {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockReminderRepository) Update(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[reminder.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	m.reminders[reminder.ID] = *reminder
	updated := *reminder
	return &updated, nil
}

func (m *mockReminderRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.reminders, id)
	return nil
}

func (m *mockReminderRepository) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = make(map[int64]models.Reminder)
	return nil
}

// mockActivityLogRepository is an in-memory ActivityLogRepository
type mockActivityLogRepository struct {
	mu   sync.Mutex
	logs []models.ActivityLog
}

func (m *mockActivityLogRepository) Append(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appended := *log
	appended.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, appended)
	return &appended, nil
}

func (m *mockActivityLogRepository) List(ctx context.Context) ([]models.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ActivityLog(nil), m.logs...), nil
}

func (m *mockActivityLogRepository) ListByReminder(ctx context.Context, reminderID int64) ([]models.ActivityLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ActivityLog
	for _, l := range m.logs {
		if l.ReminderID == reminderID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockActivityLogRepository) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = nil
	return nil
}

// mockSnapshotReader serves a fixed dataset. When gate is set, the first
// call blocks until gate is closed.
type mockSnapshotReader struct {
	dataset repository.Dataset
	err     error
	gate    chan struct{}
	calls   atomic.Int32
}

func (m *mockSnapshotReader) Snapshot(ctx context.Context) (*repository.Dataset, error) {
	if m.calls.Add(1) == 1 && m.gate != nil {
		<-m.gate
	}
	if m.err != nil {
		return nil, m.err
	}
	ds := m.dataset
	return &ds, nil
}
