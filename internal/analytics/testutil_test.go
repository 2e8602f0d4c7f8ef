package analytics

import (
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// est is a fixed-offset zone so calendar boundaries differ from UTC
var est = time.FixedZone("EST", -5*60*60)

// refNow is Wednesday 2025-06-18 15:30 EST
var refNow = time.Date(2025, time.June, 18, 15, 30, 0, 0, est)

// daysAgo returns the epoch-ms timestamp of hour:00 local, n days before refNow
func daysAgo(n, hour int) int64 {
	return time.Date(2025, time.June, 18-n, hour, 0, 0, 0, est).UnixMilli()
}

type logBuilder struct {
	nextID int64
	logs   []models.ActivityLog
}

func (b *logBuilder) add(reminderID int64, action models.Action, ts int64) *logBuilder {
	b.nextID++
	b.logs = append(b.logs, models.ActivityLog{
		ID:            b.nextID,
		ReminderID:    reminderID,
		Action:        action,
		Timestamp:     ts,
		ScheduledTime: ts,
	})
	return b
}

func (b *logBuilder) completed(daysBack, hour int) *logBuilder {
	return b.add(1, models.ActionCompleted, daysAgo(daysBack, hour))
}

func (b *logBuilder) dismissed(daysBack, hour int) *logBuilder {
	return b.add(1, models.ActionDismissed, daysAgo(daysBack, hour))
}
