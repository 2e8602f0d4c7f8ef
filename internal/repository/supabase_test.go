package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/pkg/supabase"
)

func TestSupabaseSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/reminders":
			w.Write([]byte(`[{"id":1,"title":"Vitamins","category":"health"},{"id":2,"title":"Old","category":"gardening"}]`))
		case "/rest/v1/activity_logs":
			assert.Equal(t, "timestamp.asc,id.asc", r.URL.Query().Get("order"))
			w.Write([]byte(`[{"id":5,"reminder_id":1,"action":"completed","timestamp":1000}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	repos := NewSupabase(supabase.NewClient(srv.URL, "key"))
	ds, err := repos.Snapshots.Snapshot(context.Background())

	require.NoError(t, err)
	require.Len(t, ds.Reminders, 2)
	assert.Equal(t, models.CategoryHealth, ds.Reminders[0].Category)
	assert.Equal(t, models.CategoryUnknown, ds.Reminders[1].Category)
	require.Len(t, ds.Logs, 1)
	assert.Equal(t, models.ActionCompleted, ds.Logs[0].Action)
}

func TestSupabaseSnapshot_PropagatesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/v1/activity_logs" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repos := NewSupabase(supabase.NewClient(srv.URL, "key"))
	_, err := repos.Snapshots.Snapshot(context.Background())
	assert.Error(t, err)
}

func TestSupabaseLogs_Pagination(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		n := supabasePageSize
		if offset > 0 {
			n = 3
		}
		page := make([]models.ActivityLog, n)
		for i := range page {
			page[i] = models.ActivityLog{ID: int64(offset + i + 1), Action: models.ActionCompleted, Timestamp: 1}
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	repos := NewSupabase(supabase.NewClient(srv.URL, "key"))
	logs, err := repos.Logs.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, logs, supabasePageSize+3)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSupabaseReminders_GetByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.9", r.URL.Query().Get("id"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repos := NewSupabase(supabase.NewClient(srv.URL, "key"))
	_, err := repos.Reminders.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSupabaseIdempotency_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"key":"k","route":"/api/v1/logs","response_body":{"id":3},"status_code":201,"created_at":"2025-06-18T10:00:00Z"}]`))
	}))
	defer srv.Close()

	repos := NewSupabase(supabase.NewClient(srv.URL, "key"))
	rec, err := repos.Idempotency.Get(context.Background(), "k", "/api/v1/logs")

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.JSONEq(t, `{"id":3}`, string(rec.ResponseBody))
	assert.Equal(t, 201, rec.StatusCode)
}
