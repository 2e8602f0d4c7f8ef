package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/remindr/backend/internal/apierror"
	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/service"
)

// StaleSnapshotHeader marks a snapshot that a newer request superseded
const StaleSnapshotHeader = "X-Snapshot-Stale"

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	exportService    service.ExportService
	defaultRange     models.TrendRange
}

// NewAnalyticsHandler creates a new analytics handler. defaultRange applies
// to snapshot requests that name no range.
func NewAnalyticsHandler(analyticsService service.AnalyticsService, exportService service.ExportService, defaultRange models.TrendRange) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		exportService:    exportService,
		defaultRange:     defaultRange,
	}
}

// GetSnapshot handles GET /api/v1/analytics/snapshot?range=30d&now=RFC3339.
// Without now the snapshot is measured from the server clock and published
// as the latest one. With now it is computed in now's offset and not
// published.
func (h *AnalyticsHandler) GetSnapshot(c *gin.Context) {
	rawRange := c.Query("range")
	rng, err := models.ParseTrendRange(rawRange)
	if rawRange == "" && h.defaultRange != "" {
		rng = h.defaultRange
	}
	if err != nil {
		apierror.WriteProblem(c, apierror.NewInvalidRangeError(apierror.GetRequestID(c), rawRange, rangeKeys()))
		return
	}

	if rawNow := c.Query("now"); rawNow != "" {
		now, err := time.Parse(time.RFC3339, rawNow)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
				{Field: "now", Message: "must be an RFC 3339 timestamp", Code: "invalid_timestamp"},
			}))
			return
		}

		snap, err := h.analyticsService.Snapshot(c.Request.Context(), rng, now)
		if err != nil {
			writeServiceError(c, err, "", "")
			return
		}
		c.JSON(http.StatusOK, snap)
		return
	}

	snap, err := h.analyticsService.Refresh(c.Request.Context(), rng)
	if errors.Is(err, service.ErrStaleSnapshot) {
		// Still a correct answer for this request's inputs
		c.Header(StaleSnapshotHeader, "true")
		err = nil
	}
	if err != nil {
		writeServiceError(c, err, "", "")
		return
	}

	c.JSON(http.StatusOK, snap)
}

// GetLatest handles GET /api/v1/analytics/latest
func (h *AnalyticsHandler) GetLatest(c *gin.Context) {
	snap, ok := h.analyticsService.Latest()
	if !ok {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "Snapshot", "latest"))
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Export handles GET /api/v1/analytics/export as a CSV attachment
func (h *AnalyticsHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	rows, err := h.exportService.WriteCSV(c.Request.Context(), &buf)
	if err != nil {
		writeServiceError(c, err, "", "")
		return
	}

	logger.FromContext(c.Request.Context()).Debug("export written",
		logger.Int("rows", rows),
		logger.Int("bytes", buf.Len()),
	)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportService.Filename()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
