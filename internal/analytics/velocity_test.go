package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
)

func TestVelocityOf(t *testing.T) {
	series := func(completed ...int) []models.TrendBucket {
		out := make([]models.TrendBucket, len(completed))
		for i, c := range completed {
			out[i] = models.TrendBucket{Completed: c, Total: c}
		}
		return out
	}

	tests := []struct {
		name string
		in   []models.TrendBucket
		want models.Velocity
	}{
		{"empty", nil, models.Velocity{Direction: models.DirectionStable}},
		{"single bucket", series(3), models.Velocity{Direction: models.DirectionStable}},
		{"uses last four buckets", series(1, 2, 3, 4, 5), models.Velocity{Value: 3, Direction: models.DirectionUp}},
		{"falling", series(5, 1), models.Velocity{Value: -4, Direction: models.DirectionDown}},
		{"flat ends", series(2, 5, 2), models.Velocity{Direction: models.DirectionStable}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VelocityOf(tt.in))
		})
	}
}
