// Package report renders analytics snapshots for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

const (
	barWidth    = 20
	trendRows   = 8
	labelWidth  = 18
	bucketWidth = 10
)

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	up      lipgloss.Style
	down    lipgloss.Style
	box     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true),
		section: r.NewStyle().
			Foreground(lipgloss.Color("147")).
			Bold(true).
			MarginTop(1),
		label: r.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(labelWidth),
		value: r.NewStyle().
			Foreground(lipgloss.Color("255")),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("240")),
		up: r.NewStyle().
			Foreground(lipgloss.Color("114")),
		down: r.NewStyle().
			Foreground(lipgloss.Color("203")),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
	}
}

// Render writes a human-readable summary of snap to w. Colors are only
// emitted when w is a terminal that supports them.
func Render(w io.Writer, snap *models.AnalyticsSnapshot) error {
	s := newStyles(lipgloss.NewRenderer(w))

	blocks := []string{
		s.title.Render(fmt.Sprintf("Reminder analytics · %s · %s", snap.Range, snap.Granularity)),
		s.dim.Render("generated " + snap.GeneratedAt.Format("2006-01-02 15:04 MST")),
		s.box.Render(summary(s, snap)),
	}

	if len(snap.CategoryStats) > 0 {
		blocks = append(blocks, s.section.Render("Categories"), categories(s, snap.CategoryStats))
	}
	if len(snap.Trend) > 0 {
		blocks = append(blocks, s.section.Render("Trend"), trend(s, snap.Trend))
	}
	blocks = append(blocks, s.section.Render("Patterns"), patterns(s, snap))

	_, err := io.WriteString(w, lipgloss.JoinVertical(lipgloss.Left, blocks...)+"\n")
	return err
}

func summary(s styles, snap *models.AnalyticsSnapshot) string {
	rows := []struct {
		label string
		value string
	}{
		{"Completed", fmt.Sprintf("%d", snap.Completed)},
		{"Dismissed", fmt.Sprintf("%d", snap.Dismissed)},
		{"Snoozed", fmt.Sprintf("%d", snap.Snoozed)},
		{"Total", fmt.Sprintf("%d", snap.Total)},
		{"Completion rate", fmt.Sprintf("%d%%", snap.CompletionRate)},
		{"Current streak", days(snap.CurrentStreak)},
		{"Best streak", days(snap.BestStreak)},
		{"Weekly average", fmt.Sprintf("%.1f", snap.WeeklyAverage)},
		{"Consistency", fmt.Sprintf("%d/100", snap.ConsistencyScore)},
		{"Velocity", velocity(s, snap.Velocity)},
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(r.label), s.value.Render(r.value))
	}
	return strings.Join(lines, "\n")
}

func categories(s styles, stats []models.CategoryStat) string {
	lines := make([]string, len(stats))
	for i, c := range stats {
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Render(c.Label),
			bar(c.Rate),
			s.value.Render(fmt.Sprintf(" %3d%%", c.Rate)),
			s.dim.Render(fmt.Sprintf(" (%d/%d)", c.Completed, c.Total)),
		)
	}
	return strings.Join(lines, "\n")
}

// trend shows the most recent buckets only
func trend(s styles, buckets []models.TrendBucket) string {
	if len(buckets) > trendRows {
		buckets = buckets[len(buckets)-trendRows:]
	}
	lines := make([]string, len(buckets))
	for i, b := range buckets {
		rate := s.dim.Render("   -")
		if b.Total > 0 {
			rate = s.value.Render(fmt.Sprintf(" %3d%%", b.Rate))
		}
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Width(bucketWidth).Render(b.Label),
			bar(b.Rate),
			rate,
		)
	}
	return strings.Join(lines, "\n")
}

func patterns(s styles, snap *models.AnalyticsSnapshot) string {
	peak := "-"
	best := 0
	for _, h := range snap.Hourly {
		if h.Count > best {
			best = h.Count
			peak = fmt.Sprintf("%s (%d)", h.Label, h.Count)
		}
	}

	bestDay := "-"
	bestRate := -1
	for _, d := range snap.DayOfWeek {
		if d.Total > 0 && d.Rate > bestRate {
			bestRate = d.Rate
			bestDay = fmt.Sprintf("%s (%d%%)", time.Weekday(d.Day%7), d.Rate)
		}
	}

	return strings.Join([]string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render("Peak hour"), s.value.Render(peak)),
		lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render("Best day"), s.value.Render(bestDay)),
	}, "\n")
}

func velocity(s styles, v models.Velocity) string {
	text := fmt.Sprintf("%+d (%s)", v.Value, v.Direction)
	switch v.Direction {
	case models.DirectionUp:
		return s.up.Render(text)
	case models.DirectionDown:
		return s.down.Render(text)
	default:
		return s.value.Render(text)
	}
}

func bar(rate int) string {
	filled := rate * barWidth / 100
	filled = max(0, min(barWidth, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
