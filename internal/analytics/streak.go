package analytics

import (
	"sort"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// currentStreakHorizon bounds how far back the current streak is scanned
const currentStreakHorizon = 365

// StreakResult holds the completion streaks in days
type StreakResult struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// Streaks computes the current and best completion streaks. Only completed
// logs with a usable timestamp contribute an active date.
func Streaks(logs []models.ActivityLog, now time.Time) StreakResult {
	active := dailyCounts(completedOnly(logs), now.Location())
	if len(active) == 0 {
		return StreakResult{}
	}

	return StreakResult{
		Current: currentStreak(active, dayNumber(now)),
		Best:    bestStreak(active),
	}
}

// currentStreak walks back from today. A missing today does not end the
// scan, so yesterday's run still counts before today's reminder is done.
func currentStreak(active map[int64]int, today int64) int {
	streak := 0
	for i := int64(0); i < currentStreakHorizon; i++ {
		if _, ok := active[today-i]; ok {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// bestStreak walks the active dates most recent first. After a gap the
// running counter restarts at 1, and any history yields at least 1.
func bestStreak(active map[int64]int) int {
	days := make([]int64, 0, len(active))
	for d := range active {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	best, running := 0, 0
	for i := 0; i < len(days)-1; i++ {
		if days[i]-days[i+1] <= 1 {
			running++
			best = max(best, running)
		} else {
			running = 1
		}
	}

	if len(days) > 0 {
		best = max(best, 1)
	}
	return best
}
