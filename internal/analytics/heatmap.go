package analytics

import (
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

const (
	heatmapDays  = 90
	heatmapWeeks = 13
)

// Heatmap builds the Monday-first activity grid for the 90 days ending today.
// Rows stop at 13 weeks or once a row would start after today, whichever
// comes first. Cells outside the window are present but carry no count.
func Heatmap(logs []models.ActivityLog, now time.Time) []models.HeatmapCell {
	counts := dailyCounts(completedOnly(logs), now.Location())

	today := startOfDay(now)
	windowStart := today.AddDate(0, 0, -(heatmapDays - 1))
	gridStart := windowStart.AddDate(0, 0, -(isoWeekday(windowStart) - 1))
	first, last := dayNumber(windowStart), dayNumber(today)

	cells := make([]models.HeatmapCell, 0, heatmapWeeks*7)
	for week := 0; week < heatmapWeeks; week++ {
		rowStart := gridStart.AddDate(0, 0, 7*week)
		if rowStart.After(today) {
			break
		}
		for day := 0; day < 7; day++ {
			date := rowStart.AddDate(0, 0, day)
			n := dayNumber(date)
			cell := models.HeatmapCell{
				Date:     date.Format(models.DateLayout),
				Week:     week,
				Day:      day,
				InWindow: n >= first && n <= last,
			}
			if cell.InWindow {
				cell.Count = counts[n]
				cell.Intensity = Intensity(cell.Count)
			}
			cells = append(cells, cell)
		}
	}
	return cells
}

// Intensity discretizes a day's completion count
func Intensity(count int) float64 {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 0.25
	case count <= 3:
		return 0.5
	case count <= 5:
		return 0.75
	default:
		return 1
	}
}
