package analytics

import "github.com/JonnyWalker81/remindr/backend/internal/models"

// CategoryRates reports completed/total/rate per catalog category. Logs whose
// reminder cannot be resolved, or whose reminder carries a key outside the
// catalog, count towards no category. Categories without logs are omitted.
func CategoryRates(reminders []models.Reminder, logs []models.ActivityLog) []models.CategoryStat {
	byID := make(map[int64]models.Category, len(reminders))
	for _, r := range reminders {
		byID[r.ID] = r.Category
	}

	type tally struct{ completed, total int }
	tallies := make(map[models.Category]*tally)
	for _, l := range logs {
		cat, ok := byID[l.ReminderID]
		if !ok {
			continue
		}
		t, ok := tallies[cat]
		if !ok {
			t = &tally{}
			tallies[cat] = t
		}
		t.total++
		if l.Action == models.ActionCompleted {
			t.completed++
		}
	}

	stats := make([]models.CategoryStat, 0, len(tallies))
	for _, info := range models.Categories() {
		t, ok := tallies[info.Key]
		if !ok || t.total == 0 {
			continue
		}
		stats = append(stats, models.CategoryStat{
			Category:  info.Key,
			Label:     info.Label,
			Color:     info.Color,
			Completed: t.completed,
			Total:     t.total,
			Rate:      percent(t.completed, t.total),
		})
	}
	return stats
}
