package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/service"
)

type ReminderHandler struct {
	reminderService service.ReminderService
	activityService service.ActivityService
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService service.ReminderService, activityService service.ActivityService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		activityService: activityService,
	}
}

// CreateReminder handles POST /api/v1/reminders
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req models.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	reminder, err := h.reminderService.CreateReminder(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Reminder", "")
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

// GetReminders handles GET /api/v1/reminders
func (h *ReminderHandler) GetReminders(c *gin.Context) {
	reminders, err := h.reminderService.ListReminders(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Reminder", "")
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// GetReminder handles GET /api/v1/reminders/:id
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	reminder, err := h.reminderService.GetReminder(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Reminder", strconv.FormatInt(id, 10))
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// UpdateReminder handles PUT /api/v1/reminders/:id
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	reminder, err := h.reminderService.UpdateReminder(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err, "Reminder", strconv.FormatInt(id, 10))
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// DeleteReminder handles DELETE /api/v1/reminders/:id. The reminder's logs
// are kept.
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.reminderService.DeleteReminder(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "Reminder", strconv.FormatInt(id, 10))
		return
	}

	c.Status(http.StatusNoContent)
}

// GetReminderLogs handles GET /api/v1/reminders/:id/logs
func (h *ReminderHandler) GetReminderLogs(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	logs, err := h.activityService.ListReminderLogs(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "Reminder", strconv.FormatInt(id, 10))
		return
	}

	c.JSON(http.StatusOK, logs)
}
