package analytics

import "github.com/JonnyWalker81/remindr/backend/internal/models"

const velocityWindow = 4

// VelocityOf compares completions between the oldest and newest of the last
// four trend buckets
func VelocityOf(trend []models.TrendBucket) models.Velocity {
	recent := trend
	if len(recent) > velocityWindow {
		recent = recent[len(recent)-velocityWindow:]
	}
	if len(recent) < 2 {
		return models.Velocity{Direction: models.DirectionStable}
	}

	v := recent[len(recent)-1].Completed - recent[0].Completed
	dir := models.DirectionStable
	if v > 0 {
		dir = models.DirectionUp
	} else if v < 0 {
		dir = models.DirectionDown
	}
	return models.Velocity{Value: v, Direction: dir}
}
