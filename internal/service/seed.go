package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
)

var sampleTitles = [...]string{
	"Morning Exercise", "Take Medication", "Team Meeting", "Call Mom",
	"Grocery Shopping", "Read Book", "Water Plants", "Pay Bills",
	"Gym Workout", "Prepare Dinner", "Walk Dog", "Check Email",
	"Dentist Appointment", "Car Service", "Laundry", "Clean House",
	"Study Session", "Meditation", "Journal Writing", "Plan Tomorrow",
	"Backup Files", "Update Resume", "Network Event", "Birthday Call", "Weekly Review",
}

var sampleDescriptions = [...]string{
	"Important task to complete",
	"Don't forget this one",
	"Recurring activity",
	"Health related reminder",
	"Work commitment",
}

// four completions for every dismissal
var sampleActions = [...]models.Action{
	models.ActionCompleted, models.ActionCompleted, models.ActionCompleted,
	models.ActionDismissed, models.ActionCompleted,
}

const sampleHistoryDays = 60

// SeedResult reports what Seed stored
type SeedResult struct {
	Reminders int `json:"reminders"`
	Logs      int `json:"logs"`
}

type seedService struct {
	reminderRepo repository.ReminderRepository
	logRepo      repository.ActivityLogRepository
	clock        Clock
	loc          *time.Location
}

// NewSeedService creates a service that replaces stored data with samples
func NewSeedService(reminderRepo repository.ReminderRepository, logRepo repository.ActivityLogRepository, clock Clock, loc *time.Location) SeedService {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &seedService{reminderRepo: reminderRepo, logRepo: logRepo, clock: clock, loc: loc}
}

// Seed clears both stores and writes one reminder per sample title, each
// with one to three daily logs starting on a random day of the last 60.
// Logs that would fall after now are skipped. The same seed and clock
// always produce the same data.
func (s *seedService) Seed(ctx context.Context, seed uint64) (*SeedResult, error) {
	if err := s.logRepo.DeleteAll(ctx); err != nil {
		return nil, err
	}
	if err := s.reminderRepo.DeleteAll(ctx); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	categories := models.Categories()
	now := s.clock().In(s.loc)
	result := &SeedResult{}

	for _, title := range sampleTitles {
		day := now.AddDate(0, 0, -rng.IntN(sampleHistoryDays))
		minute := 0
		if rng.Float64() > 0.5 {
			minute = 30
		}
		scheduledAt := time.Date(day.Year(), day.Month(), day.Day(), 8+rng.IntN(12), minute, 0, 0, s.loc)

		repeat := models.RepeatNone
		if rng.Float64() > 0.7 {
			repeat = models.RepeatDaily
		}

		reminder, err := s.reminderRepo.Create(ctx, &models.Reminder{
			Title:         title,
			Description:   sampleDescriptions[rng.IntN(len(sampleDescriptions))],
			Category:      categories[rng.IntN(len(categories))].Key,
			ScheduledDate: scheduledAt.Format(models.DateLayout),
			ScheduledTime: scheduledAt.Format(models.TimeLayout),
			RepeatType:    repeat,
			IsActive:      rng.Float64() > 0.3,
			CreatedAt:     day.UnixMilli(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed reminder %q: %w", title, err)
		}
		result.Reminders++

		actions := rng.IntN(3) + 1
		for j := 0; j < actions; j++ {
			at := day.AddDate(0, 0, j)
			action := sampleActions[rng.IntN(len(sampleActions))]
			if at.After(now) {
				continue
			}
			if _, err := s.logRepo.Append(ctx, &models.ActivityLog{
				ReminderID:    reminder.ID,
				Action:        action,
				Timestamp:     at.UnixMilli(),
				ScheduledTime: at.UnixMilli(),
			}); err != nil {
				return nil, fmt.Errorf("failed to seed activity log: %w", err)
			}
			result.Logs++
		}
	}

	logger.Ctx(ctx).Info("sample data generated",
		logger.Int("reminders", result.Reminders),
		logger.Int("logs", result.Logs),
		logger.Uint64("seed", seed),
	)
	return result, nil
}
