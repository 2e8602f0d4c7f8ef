package analytics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

func TestExportCSV(t *testing.T) {
	reminders := []models.Reminder{
		{ID: 1, Title: "Take vitamins", Category: models.CategoryHealth, ScheduledDate: "2025-06-01"},
		{ID: 2, Title: "Call mom, then dad", Category: models.CategoryFamily, ScheduledDate: "2025-06-02"},
	}
	ts := time.Date(2025, time.June, 18, 14, 5, 9, 120*int(time.Millisecond), time.UTC).UnixMilli()
	logs := []models.ActivityLog{
		{ID: 1, ReminderID: 1, Action: models.ActionCompleted, Timestamp: ts},
		{ID: 2, ReminderID: 2, Action: models.ActionSnoozed, Timestamp: ts},
		{ID: 3, ReminderID: 42, Action: models.ActionDismissed, Timestamp: ts},
	}

	out, err := ExportCSV(logs, reminders)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Reminder Title,Action,Category,Scheduled Date", lines[0])
	assert.Equal(t, "2025-06-18T14:05:09.120Z,Take vitamins,completed,health,2025-06-01", lines[1])
	assert.Equal(t, `2025-06-18T14:05:09.120Z,"Call mom, then dad",snoozed,family,2025-06-02`, lines[2])
	assert.Equal(t, "2025-06-18T14:05:09.120Z,Unknown,dismissed,Unknown,Unknown", lines[3])

	rows, err := ParseCSV(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, rows, len(logs))
	for i, row := range rows {
		assert.Equal(t, logs[i].Timestamp, row.Date.UnixMilli())
		assert.Equal(t, string(logs[i].Action), row.Action)
	}
	assert.Equal(t, "Call mom, then dad", rows[1].Title)
	assert.Equal(t, UnknownField, rows[2].Category)
}

func TestExportCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteCSV(&buf, nil, nil)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "Date,Reminder Title,Action,Category,Scheduled Date\n", buf.String())
}

func TestParseCSV_RejectsForeignHeader(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("when,what,how,why,where\n"))
	assert.Error(t, err)

	_, err = ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}
