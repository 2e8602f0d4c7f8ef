package analytics

import (
	"math"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// ConsistencyScore rates how evenly completions are spread across the days
// that have any. 100 means every active day saw the same number of
// completions; the score drops with the coefficient of variation.
func ConsistencyScore(logs []models.ActivityLog, loc *time.Location) int {
	counts := dailyCounts(completedOnly(logs), loc)
	if len(counts) == 0 {
		return 0
	}

	n := float64(len(counts))
	var sum float64
	for _, c := range counts {
		sum += float64(c)
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, c := range counts {
		d := float64(c) - mean
		variance += d * d
	}
	stdDev := math.Sqrt(variance / n)

	score := math.Round(100 - (stdDev/mean)*100)
	return int(math.Max(0, math.Min(100, score)))
}
