package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

const (
	// Ranges longer than this many days are bucketed by month
	monthlyThresholdDays = 180
	// Ranges longer than this many days (up to the monthly threshold) are bucketed by week
	weeklyThresholdDays = 30
	// Daily mode always covers this many trailing days
	dailyWindowDays = 30
)

// TrendSeries is the completion trend and the granularity it was built at
type TrendSeries struct {
	Granularity models.Granularity
	Buckets     []models.TrendBucket
}

// Trend builds the chronological completion-rate series for rng. The bucket
// width adapts to the span between the range start and now.
func Trend(logs []models.ActivityLog, rng models.TrendRange, now time.Time) TrendSeries {
	logs = timed(logs)
	start := RangeStart(logs, rng, now)
	elapsed := ElapsedDays(start, now)

	switch SelectGranularity(elapsed) {
	case models.GranularityMonthly:
		return TrendSeries{Granularity: models.GranularityMonthly, Buckets: monthlyBuckets(logs, start, now.Location())}
	case models.GranularityWeekly:
		return TrendSeries{Granularity: models.GranularityWeekly, Buckets: weeklyBuckets(logs, elapsed, now)}
	default:
		return TrendSeries{Granularity: models.GranularityDaily, Buckets: dailyBuckets(logs, now)}
	}
}

// RangeStart resolves the first instant covered by rng. For RangeAll it is
// the earliest log, or now when there are no logs. Unknown ranges fall back
// to the default range.
func RangeStart(logs []models.ActivityLog, rng models.TrendRange, now time.Time) time.Time {
	switch rng {
	case models.Range90d:
		return now.AddDate(0, 0, -90)
	case models.Range180d:
		return now.AddDate(0, 0, -180)
	case models.RangeYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case models.RangeAll:
		earliest, ok := earliestTimestamp(logs)
		if !ok {
			return now
		}
		return time.UnixMilli(earliest).In(now.Location())
	default:
		return now.AddDate(0, 0, -30)
	}
}

// ElapsedDays is ceil(|now - start| / 1 day), measured on the local wall clock
func ElapsedDays(start, now time.Time) int {
	diff := wallClock(now).Sub(wallClock(start))
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(float64(diff) / float64(24*time.Hour)))
}

// SelectGranularity picks the bucket width for a span of elapsed days
func SelectGranularity(elapsedDays int) models.Granularity {
	switch {
	case elapsedDays > monthlyThresholdDays:
		return models.GranularityMonthly
	case elapsedDays > weeklyThresholdDays:
		return models.GranularityWeekly
	default:
		return models.GranularityDaily
	}
}

func earliestTimestamp(logs []models.ActivityLog) (int64, bool) {
	found := false
	var earliest int64
	for _, l := range logs {
		if !l.HasValidTimestamp() {
			continue
		}
		if !found || l.Timestamp < earliest {
			earliest = l.Timestamp
			found = true
		}
	}
	return earliest, found
}

func monthlyBuckets(logs []models.ActivityLog, start time.Time, loc *time.Location) []models.TrendBucket {
	type monthKey struct {
		year  int
		month time.Month
	}
	months := make(map[monthKey]*models.TrendBucket)
	startMs := start.UnixMilli()

	for _, l := range logs {
		if l.Timestamp < startMs {
			continue
		}
		t := l.Time(loc)
		key := monthKey{t.Year(), t.Month()}
		b, ok := months[key]
		if !ok {
			first := time.Date(key.year, key.month, 1, 0, 0, 0, 0, loc)
			b = &models.TrendBucket{Label: first.Format("Jan 06"), Start: first.UnixMilli()}
			months[key] = b
		}
		b.Total++
		if l.Action == models.ActionCompleted {
			b.Completed++
		}
	}

	buckets := make([]models.TrendBucket, 0, len(months))
	for _, b := range months {
		b.Rate = percent(b.Completed, b.Total)
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Start < buckets[j].Start })
	return buckets
}

// weeklyBuckets lays 7-day windows back from today. Windows are anchored to
// now rather than to Monday, so the newest one starts today.
func weeklyBuckets(logs []models.ActivityLog, elapsed int, now time.Time) []models.TrendBucket {
	weeks := int(math.Ceil(float64(elapsed) / 7))
	buckets := make([]models.TrendBucket, 0, weeks+1)

	for i := weeks; i >= 0; i-- {
		weekStart := startOfDay(now.AddDate(0, 0, -7*i))
		weekNum := int(math.Ceil(float64(elapsed-i*7) / 7))
		buckets = append(buckets, models.TrendBucket{
			Label: fmt.Sprintf("Week %d", weekNum),
			Start: weekStart.UnixMilli(),
		})
	}

	first := dayNumber(now) - int64(7*weeks)
	fill(buckets, logs, now.Location(), func(day int64) int {
		if day < first {
			return -1
		}
		return int((day - first) / 7)
	})
	return buckets
}

// dailyBuckets covers the trailing 30 local days ending today
func dailyBuckets(logs []models.ActivityLog, now time.Time) []models.TrendBucket {
	buckets := make([]models.TrendBucket, 0, dailyWindowDays)
	for i := dailyWindowDays - 1; i >= 0; i-- {
		day := startOfDay(now.AddDate(0, 0, -i))
		buckets = append(buckets, models.TrendBucket{
			Label: day.Format("Jan 2"),
			Start: day.UnixMilli(),
		})
	}

	first := dayNumber(now) - int64(dailyWindowDays-1)
	fill(buckets, logs, now.Location(), func(day int64) int {
		return int(day - first)
	})
	return buckets
}

// fill counts each log into the bucket chosen by index. Indexes outside the
// slice are ignored.
func fill(buckets []models.TrendBucket, logs []models.ActivityLog, loc *time.Location, index func(day int64) int) {
	for _, l := range logs {
		i := index(dayNumber(l.Time(loc)))
		if i < 0 || i >= len(buckets) {
			continue
		}
		buckets[i].Total++
		if l.Action == models.ActionCompleted {
			buckets[i].Completed++
		}
	}
	for i := range buckets {
		buckets[i].Rate = percent(buckets[i].Completed, buckets[i].Total)
	}
}
