package models

import (
	"fmt"
	"time"
)

// TrendRange selects how far back the completion trend reaches
type TrendRange string

const (
	Range30d  TrendRange = "30d"
	Range90d  TrendRange = "90d"
	Range180d TrendRange = "180d"
	RangeYTD  TrendRange = "ytd"
	RangeAll  TrendRange = "all"

	DefaultTrendRange = Range30d
)

// TrendRanges lists the accepted range selectors, shortest first
func TrendRanges() []TrendRange {
	return []TrendRange{Range30d, Range90d, Range180d, RangeYTD, RangeAll}
}

// ParseTrendRange validates a range selector. An empty string yields the default.
func ParseTrendRange(s string) (TrendRange, error) {
	switch r := TrendRange(s); r {
	case "":
		return DefaultTrendRange, nil
	case Range30d, Range90d, Range180d, RangeYTD, RangeAll:
		return r, nil
	default:
		return "", fmt.Errorf("unknown trend range %q (want 30d, 90d, 180d, ytd or all)", s)
	}
}

// Granularity is the bucket width the trend series was built with
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// Direction of the velocity metric
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// TrendBucket is one window of the completion trend
type TrendBucket struct {
	Label     string `json:"label"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Rate      int    `json:"rate"`
	Start     int64  `json:"timestamp"` // window start, epoch milliseconds
}

// CategoryStat is the success rate of a single category
type CategoryStat struct {
	Category  Category `json:"category"`
	Label     string   `json:"name"`
	Color     string   `json:"color"`
	Completed int      `json:"completed"`
	Total     int      `json:"total"`
	Rate      int      `json:"rate"`
}

// HourBucket counts completions for one hour of the day
type HourBucket struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DayOfWeekBucket aggregates one ISO weekday (Monday=1 ... Sunday=7)
type DayOfWeekBucket struct {
	Day       int    `json:"day"`
	Label     string `json:"label"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Rate      int    `json:"rate"`
}

// HeatmapCell is one day of the 13-week activity grid
type HeatmapCell struct {
	Date      string  `json:"date"`
	Week      int     `json:"week"`
	Day       int     `json:"day"` // 0 = Monday ... 6 = Sunday
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"`
	InWindow  bool    `json:"in_window"`
}

// Velocity is the change in completions across the most recent trend buckets
type Velocity struct {
	Value     int       `json:"value"`
	Direction Direction `json:"trend"`
}

// WeeklyActivityDay is one day of the current-week activity strip
type WeeklyActivityDay struct {
	Label     string  `json:"day"`
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"`
	Level     int     `json:"level"` // 0-4
}

// AnalyticsSnapshot is the immutable result of one aggregation run
type AnalyticsSnapshot struct {
	Completed        int     `json:"completed"`
	Dismissed        int     `json:"dismissed"`
	Snoozed          int     `json:"snoozed"`
	Total            int     `json:"total"`
	CompletionRate   int     `json:"completion_rate"`
	CurrentStreak    int     `json:"current_streak"`
	BestStreak       int     `json:"best_streak"`
	WeeklyAverage    float64 `json:"weekly_average"`
	ConsistencyScore int     `json:"consistency_score"`

	Range          TrendRange           `json:"range"`
	Granularity    Granularity          `json:"granularity"`
	Trend          []TrendBucket        `json:"trend"`
	CategoryStats  []CategoryStat       `json:"category_stats"`
	Hourly         [24]HourBucket       `json:"hourly"`
	DayOfWeek      [7]DayOfWeekBucket   `json:"day_of_week"`
	Heatmap        []HeatmapCell        `json:"heatmap"`
	Velocity       Velocity             `json:"velocity"`
	WeeklyActivity [7]WeeklyActivityDay `json:"weekly_activity"`

	GeneratedAt time.Time `json:"generated_at"`
}
