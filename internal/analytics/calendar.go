// Package analytics turns reminder and activity-log collections into derived
// statistics. Every function here is pure: inputs are explicit, "now" is a
// parameter, and the local calendar is the location carried by "now".
package analytics

import (
	"math"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

const msPerDay = int64(24 * time.Hour / time.Millisecond)

// dayNumber maps the calendar date of t (in t's location) to a day count
// since the Unix epoch. Differences between day numbers are whole calendar
// days regardless of DST transitions.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// startOfDay truncates t to local midnight
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// wallClock re-expresses t's local wall-clock reading in UTC so that two
// readings can be subtracted without DST offsets leaking into the result.
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// percent returns round(part/total*100), or 0 when total is 0
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// timed keeps logs whose timestamp can be placed on the calendar
func timed(logs []models.ActivityLog) []models.ActivityLog {
	out := make([]models.ActivityLog, 0, len(logs))
	for _, l := range logs {
		if l.HasValidTimestamp() {
			out = append(out, l)
		}
	}
	return out
}

// completedOnly keeps completed logs
func completedOnly(logs []models.ActivityLog) []models.ActivityLog {
	out := make([]models.ActivityLog, 0, len(logs))
	for _, l := range logs {
		if l.Action == models.ActionCompleted {
			out = append(out, l)
		}
	}
	return out
}

// dailyCounts groups timed logs by local calendar day
func dailyCounts(logs []models.ActivityLog, loc *time.Location) map[int64]int {
	counts := make(map[int64]int)
	for _, l := range logs {
		if !l.HasValidTimestamp() {
			continue
		}
		counts[dayNumber(l.Time(loc))]++
	}
	return counts
}
