package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/repository"
)

type activityService struct {
	logRepo      repository.ActivityLogRepository
	reminderRepo repository.ReminderRepository
	clock        Clock
}

// NewActivityService creates a new activity service
func NewActivityService(logRepo repository.ActivityLogRepository, reminderRepo repository.ReminderRepository, clock Clock) ActivityService {
	if clock == nil {
		clock = time.Now
	}
	return &activityService{logRepo: logRepo, reminderRepo: reminderRepo, clock: clock}
}

// LogActivity appends a response to an existing reminder. The timestamp
// defaults to now and the scheduled time to the timestamp.
func (s *activityService) LogActivity(ctx context.Context, req *models.LogActivityRequest) (*models.ActivityLog, error) {
	action := models.Action(req.Action)
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	if _, err := s.reminderRepo.GetByID(ctx, req.ReminderID); err != nil {
		return nil, mapNotFound(err)
	}

	ts := s.clock()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	scheduled := ts
	if req.ScheduledTime != nil {
		scheduled = *req.ScheduledTime
	}

	log, err := s.logRepo.Append(ctx, &models.ActivityLog{
		ReminderID:    req.ReminderID,
		Action:        action,
		Timestamp:     ts.UnixMilli(),
		ScheduledTime: scheduled.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Debug("activity logged",
		logger.Int64("log_id", log.ID),
		logger.Int64("reminder_id", log.ReminderID),
		logger.String("action", string(log.Action)),
	)
	return log, nil
}

func (s *activityService) ListLogs(ctx context.Context) ([]models.ActivityLog, error) {
	return s.logRepo.List(ctx)
}

func (s *activityService) ListReminderLogs(ctx context.Context, reminderID int64) ([]models.ActivityLog, error) {
	if _, err := s.reminderRepo.GetByID(ctx, reminderID); err != nil {
		return nil, mapNotFound(err)
	}
	return s.logRepo.ListByReminder(ctx, reminderID)
}
