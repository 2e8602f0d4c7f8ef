package analytics

import (
	"fmt"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

var dayOfWeekLabels = [7]string{"M", "T", "W", "T", "F", "S", "S"}

// Hourly counts completed logs by local hour of day
func Hourly(logs []models.ActivityLog, loc *time.Location) [24]models.HourBucket {
	var hours [24]models.HourBucket
	for h := range hours {
		hours[h] = models.HourBucket{Hour: h, Label: fmt.Sprintf("%d:00", h)}
	}

	for _, l := range logs {
		if l.Action != models.ActionCompleted || !l.HasValidTimestamp() {
			continue
		}
		hours[l.Time(loc).Hour()].Count++
	}
	return hours
}

// DaysOfWeek aggregates all logs by ISO weekday, Monday first
func DaysOfWeek(logs []models.ActivityLog, loc *time.Location) [7]models.DayOfWeekBucket {
	var days [7]models.DayOfWeekBucket
	for i := range days {
		days[i] = models.DayOfWeekBucket{Day: i + 1, Label: dayOfWeekLabels[i]}
	}

	for _, l := range logs {
		if !l.HasValidTimestamp() {
			continue
		}
		b := &days[isoWeekday(l.Time(loc))-1]
		b.Total++
		if l.Action == models.ActionCompleted {
			b.Completed++
		}
	}

	for i := range days {
		days[i].Rate = percent(days[i].Completed, days[i].Total)
	}
	return days
}

// isoWeekday maps time.Sunday (0) to 7
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
