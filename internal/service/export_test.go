package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService(t *testing.T) {
	svc := NewExportService(&mockSnapshotReader{dataset: sampleDataset()}, fixedClock, time.UTC)

	var buf bytes.Buffer
	n, err := svc.WriteCSV(context.Background(), &buf)

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "Date,Reminder Title,Action,Category,Scheduled Date", lines[0])
	assert.Contains(t, lines[1], ",Walk,completed,health,")

	assert.Equal(t, "reminder-analytics-2025-06-18.csv", svc.Filename())
}

func TestExportService_FilenameUsesLocalDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	late := func() time.Time { return time.Date(2025, time.June, 18, 20, 0, 0, 0, time.UTC) }

	svc := NewExportService(&mockSnapshotReader{}, late, tokyo)
	assert.Equal(t, "reminder-analytics-2025-06-19.csv", svc.Filename())
}
