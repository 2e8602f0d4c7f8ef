package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
	clock        Clock
}

// NewReminderService creates a new reminder service
func NewReminderService(reminderRepo repository.ReminderRepository, clock Clock) ReminderService {
	if clock == nil {
		clock = time.Now
	}
	return &reminderService{reminderRepo: reminderRepo, clock: clock}
}

func (s *reminderService) CreateReminder(ctx context.Context, req *models.CreateReminderRequest) (*models.Reminder, error) {
	reminder := &models.Reminder{
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		Category:           models.Category(req.Category),
		ScheduledDate:      req.ScheduledDate,
		ScheduledTime:      req.ScheduledTime,
		RepeatType:         models.RepeatType(req.RepeatType),
		RepeatConfig:       req.RepeatConfig,
		AdvanceReminderMin: req.AdvanceReminderMin,
		IsActive:           true,
		CreatedAt:          s.clock().UnixMilli(),
	}
	if reminder.RepeatType == "" {
		reminder.RepeatType = models.RepeatNone
	}
	if req.IsActive != nil {
		reminder.IsActive = *req.IsActive
	}

	if err := validateReminder(reminder); err != nil {
		return nil, err
	}

	created, err := s.reminderRepo.Create(ctx, reminder)
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info("reminder created",
		logger.Int64("reminder_id", created.ID),
		logger.String("category", string(created.Category)),
	)
	return created, nil
}

func (s *reminderService) GetReminder(ctx context.Context, id int64) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return reminder, nil
}

func (s *reminderService) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	return s.reminderRepo.List(ctx)
}

func (s *reminderService) UpdateReminder(ctx context.Context, id int64, req *models.UpdateReminderRequest) (*models.Reminder, error) {
	existing, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	updated := *existing
	if req.Title != nil {
		updated.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Category != nil {
		updated.Category = models.Category(*req.Category)
	}
	if req.ScheduledDate != nil {
		updated.ScheduledDate = *req.ScheduledDate
	}
	if req.ScheduledTime != nil {
		updated.ScheduledTime = *req.ScheduledTime
	}
	if req.RepeatType != nil {
		updated.RepeatType = models.RepeatType(*req.RepeatType)
	}
	updated.RepeatConfig = req.RepeatConfig.Apply(existing.RepeatConfig)
	if req.AdvanceReminderMin != nil {
		updated.AdvanceReminderMin = *req.AdvanceReminderMin
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	if err := validateReminder(&updated); err != nil {
		return nil, err
	}

	result, err := s.reminderRepo.Update(ctx, &updated)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return result, nil
}

// DeleteReminder removes the reminder. Its activity logs are kept and show
// up as Unknown in exports.
func (s *reminderService) DeleteReminder(ctx context.Context, id int64) error {
	if err := s.reminderRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	logger.Ctx(ctx).Info("reminder deleted", logger.Int64("reminder_id", id))
	return nil
}

func validateReminder(r *models.Reminder) error {
	if r.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !r.Category.Known() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, r.Category)
	}
	if _, err := time.Parse(models.DateLayout, r.ScheduledDate); err != nil {
		return fmt.Errorf("%w: scheduled_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if _, err := time.Parse(models.TimeLayout, r.ScheduledTime); err != nil {
		return fmt.Errorf("%w: scheduled_time must be HH:MM", ErrInvalidInput)
	}
	if !r.RepeatType.Valid() {
		return fmt.Errorf("%w: unknown repeat_type %q", ErrInvalidInput, r.RepeatType)
	}
	if r.AdvanceReminderMin < 0 {
		return fmt.Errorf("%w: advance_reminder_min must not be negative", ErrInvalidInput)
	}
	if rc := r.RepeatConfig; rc != nil {
		if rc.Interval < 0 {
			return fmt.Errorf("%w: repeat interval must not be negative", ErrInvalidInput)
		}
		for _, d := range rc.SelectedDays {
			if d < 0 || d > 6 {
				return fmt.Errorf("%w: selected day %d out of range 0-6", ErrInvalidInput, d)
			}
		}
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
