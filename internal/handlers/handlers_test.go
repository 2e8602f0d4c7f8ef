package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
	"github.com/JonnyWalker81/remindr/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2025, time.June, 18, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type testServer struct {
	router    *gin.Engine
	repos     *repository.Repositories
	analytics service.AnalyticsService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repos, err := repository.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "remindr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	reminderSvc := service.NewReminderService(repos.Reminders, fixedClock)
	activitySvc := service.NewActivityService(repos.Logs, repos.Reminders, fixedClock)
	analyticsSvc := service.NewAnalyticsService(repos.Snapshots, fixedClock, time.UTC)
	exportSvc := service.NewExportService(repos.Snapshots, fixedClock, time.UTC)

	reminders := NewReminderHandler(reminderSvc, activitySvc)
	activity := NewActivityHandler(activitySvc)
	analytics := NewAnalyticsHandler(analyticsSvc, exportSvc, models.Range30d)

	r := gin.New()
	r.GET("/health", Health("test"))
	v1 := r.Group("/api/v1")
	v1.GET("/categories", GetCategories)
	v1.GET("/reminders", reminders.GetReminders)
	v1.POST("/reminders", reminders.CreateReminder)
	v1.GET("/reminders/:id", reminders.GetReminder)
	v1.PUT("/reminders/:id", reminders.UpdateReminder)
	v1.DELETE("/reminders/:id", reminders.DeleteReminder)
	v1.GET("/reminders/:id/logs", reminders.GetReminderLogs)
	v1.GET("/logs", activity.GetLogs)
	v1.POST("/logs", activity.LogActivity)
	v1.GET("/analytics/snapshot", analytics.GetSnapshot)
	v1.GET("/analytics/latest", analytics.GetLatest)
	v1.GET("/analytics/export", analytics.Export)

	return &testServer{router: r, repos: repos, analytics: analyticsSvc}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func (s *testServer) createReminder(t *testing.T, title, category string) int64 {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/reminders", map[string]any{
		"title":          title,
		"category":       category,
		"scheduled_date": "2025-06-01",
		"scheduled_time": "08:00",
		"repeat_type":    "daily",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID int64 `json:"id"`
	}](t, w).ID
}

func (s *testServer) logAction(t *testing.T, reminderID int64, action string, at time.Time) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/logs", map[string]any{
		"reminder_id": reminderID,
		"action":      action,
		"timestamp":   at.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
