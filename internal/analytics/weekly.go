package analytics

import (
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

var weekStripLabels = [7]string{"S", "M", "T", "W", "T", "F", "S"}

// WeeklyActivity counts every action per day of the current Sunday-first
// week, restricted to the trailing seven days. Intensity is relative to the
// busiest day.
func WeeklyActivity(logs []models.ActivityLog, now time.Time) [7]models.WeeklyActivityDay {
	loc := now.Location()
	cutoff := now.Add(-7 * 24 * time.Hour).UnixMilli()
	sunday := dayNumber(now) - int64(now.Weekday())

	var counts [7]int
	for _, l := range logs {
		if !l.HasValidTimestamp() || l.Timestamp < cutoff {
			continue
		}
		i := dayNumber(l.Time(loc)) - sunday
		if i < 0 || i > 6 {
			continue
		}
		counts[i]++
	}

	maxCount := 1
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}

	var days [7]models.WeeklyActivityDay
	for i, c := range counts {
		intensity := float64(c) / float64(maxCount)
		days[i] = models.WeeklyActivityDay{
			Label:     weekStripLabels[i],
			Count:     c,
			Intensity: intensity,
			Level:     activityLevel(intensity),
		}
	}
	return days
}

func activityLevel(intensity float64) int {
	switch {
	case intensity > 0.75:
		return 4
	case intensity > 0.5:
		return 3
	case intensity > 0.25:
		return 2
	case intensity > 0:
		return 1
	default:
		return 0
	}
}
