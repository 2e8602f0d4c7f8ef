package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

func TestConsistencyScore(t *testing.T) {
	// perDay builds completions for consecutive days ending today
	perDay := func(counts ...int) []models.ActivityLog {
		b := new(logBuilder)
		for day, n := range counts {
			for i := 0; i < n; i++ {
				b.completed(day, 8+i)
			}
		}
		return b.logs
	}

	tests := []struct {
		name string
		logs []models.ActivityLog
		want int
	}{
		{name: "no completions", want: 0},
		{name: "dismissals only", logs: new(logBuilder).dismissed(0, 9).dismissed(1, 9).logs, want: 0},
		{name: "even days", logs: perDay(2, 2, 2, 2), want: 100},
		{name: "single active day", logs: perDay(5), want: 100},
		{name: "one and three", logs: perDay(1, 3), want: 50},
		{name: "one two three", logs: perDay(1, 2, 3), want: 59},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConsistencyScore(tt.logs, est)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestConsistencyScore_Clamped(t *testing.T) {
	b := new(logBuilder)
	for i := 0; i < 9; i++ {
		b.completed(1, i)
		b.completed(2, i)
	}
	for day := 3; day < 40; day++ {
		b.completed(day, 9)
	}
	b.completed(0, 9)

	got := ConsistencyScore(b.logs, est)
	assert.GreaterOrEqual(t, got, 0)
	assert.LessOrEqual(t, got, 100)
}
