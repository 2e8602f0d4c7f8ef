package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

// Input is one consistent view of the data plus the instant to measure from
type Input struct {
	Reminders []models.Reminder
	Logs      []models.ActivityLog
	Now       time.Time
	Range     models.TrendRange
}

// Aggregate computes the full analytics snapshot. It copies its inputs, reads
// no clock and touches no shared state, so identical inputs always produce
// identical output.
func Aggregate(in Input) models.AnalyticsSnapshot {
	reminders := slices.Clone(in.Reminders)
	logs := knownActions(in.Logs)
	now := in.Now
	loc := now.Location()

	rng := in.Range
	if _, err := models.ParseTrendRange(string(rng)); err != nil || rng == "" {
		rng = models.DefaultTrendRange
	}

	snap := models.AnalyticsSnapshot{
		Range:       rng,
		GeneratedAt: now,
	}

	for _, l := range logs {
		switch l.Action {
		case models.ActionCompleted:
			snap.Completed++
		case models.ActionDismissed:
			snap.Dismissed++
		case models.ActionSnoozed:
			snap.Snoozed++
		}
	}
	snap.Total = len(logs)
	snap.CompletionRate = percent(snap.Completed, snap.Total)
	snap.WeeklyAverage = WeeklyAverage(snap.Completed, logs, now)

	streaks := Streaks(logs, now)
	snap.CurrentStreak = streaks.Current
	snap.BestStreak = streaks.Best
	snap.ConsistencyScore = ConsistencyScore(logs, loc)

	trend := Trend(logs, rng, now)
	snap.Granularity = trend.Granularity
	snap.Trend = trend.Buckets
	snap.Velocity = VelocityOf(trend.Buckets)

	snap.CategoryStats = CategoryRates(reminders, logs)
	snap.Hourly = Hourly(logs, loc)
	snap.DayOfWeek = DaysOfWeek(logs, loc)
	snap.Heatmap = Heatmap(logs, now)
	snap.WeeklyActivity = WeeklyActivity(logs, now)

	return snap
}

// WeeklyAverage is completions per started week since the earliest log,
// rounded to one decimal. Without logs the span is a single day.
func WeeklyAverage(completed int, logs []models.ActivityLog, now time.Time) float64 {
	earliest, ok := earliestTimestamp(logs)
	if !ok {
		earliest = now.UnixMilli()
	}

	daysActive := max((now.UnixMilli()-earliest)/msPerDay, 1)
	weeks := (daysActive + 6) / 7
	return math.Round(float64(completed)/float64(weeks)*10) / 10
}

// knownActions copies logs, dropping records with an unrecognized action
func knownActions(logs []models.ActivityLog) []models.ActivityLog {
	out := make([]models.ActivityLog, 0, len(logs))
	for _, l := range logs {
		if l.Action.Valid() {
			out = append(out, l)
		}
	}
	return out
}
