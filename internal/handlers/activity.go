package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new activity log handler
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// LogActivity handles POST /api/v1/logs
func (h *ActivityHandler) LogActivity(c *gin.Context) {
	var req models.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	log, err := h.activityService.LogActivity(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "Reminder", strconv.FormatInt(req.ReminderID, 10))
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetLogs handles GET /api/v1/logs
func (h *ActivityHandler) GetLogs(c *gin.Context) {
	logs, err := h.activityService.ListLogs(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "ActivityLog", "")
		return
	}

	c.JSON(http.StatusOK, logs)
}
