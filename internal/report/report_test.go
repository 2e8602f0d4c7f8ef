package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/remindr/backend/internal/analytics"
	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

func sampleSnapshot() models.AnalyticsSnapshot {
	now := time.Date(2025, time.June, 18, 15, 30, 0, 0, time.UTC)
	reminders := []models.Reminder{
		{ID: 1, Title: "Vitamins", Category: models.CategoryHealth},
		{ID: 2, Title: "Budget", Category: models.CategoryFinance},
	}
	var logs []models.ActivityLog
	for i := 0; i < 5; i++ {
		ts := now.AddDate(0, 0, -i).Add(-6 * time.Hour).UnixMilli()
		logs = append(logs, models.ActivityLog{ID: int64(i + 1), ReminderID: 1, Action: models.ActionCompleted, Timestamp: ts, ScheduledTime: ts})
	}
	ts := now.Add(-2 * time.Hour).UnixMilli()
	logs = append(logs, models.ActivityLog{ID: 6, ReminderID: 2, Action: models.ActionDismissed, Timestamp: ts, ScheduledTime: ts})

	return analytics.Aggregate(analytics.Input{
		Reminders: reminders,
		Logs:      logs,
		Range:     models.Range30d,
		Now:       now,
	})
}

func TestRender(t *testing.T) {
	snap := sampleSnapshot()
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, &snap))
	out := buf.String()

	assert.Contains(t, out, "Reminder analytics · 30d · daily")
	assert.Contains(t, out, "Completion rate")
	assert.Contains(t, out, "83%")
	assert.Contains(t, out, "5 days")
	assert.Contains(t, out, "Health")
	assert.Contains(t, out, "Finance")
	assert.Contains(t, out, "9:00 (5)")
	assert.NotContains(t, out, "\x1b[", "a plain buffer should not receive ANSI escapes")

	// Only the most recent trend buckets are listed
	assert.Contains(t, out, "Jun 18")
	assert.NotContains(t, out, "May 20")
}

func TestRenderEmptySnapshot(t *testing.T) {
	snap := analytics.Aggregate(analytics.Input{
		Range: models.RangeAll,
		Now:   time.Date(2025, time.June, 18, 15, 30, 0, 0, time.UTC),
	})
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, &snap))

	assert.NotContains(t, buf.String(), "Categories")
	assert.Contains(t, buf.String(), "Peak hour")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", barWidth), bar(0))
	assert.Equal(t, strings.Repeat("█", 10)+strings.Repeat("░", 10), bar(50))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(100))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(140))
}
