package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/remindr/backend/internal/apierror"
	"github.com/JonnyWalker81/remindr/backend/internal/logger"
	"github.com/JonnyWalker81/remindr/backend/internal/models"
	"github.com/JonnyWalker81/remindr/backend/internal/service"
)

// writeServiceError maps a service error onto a problem response. resource
// and id name the entity for not-found errors.
func writeServiceError(c *gin.Context, err error, resource, id string) {
	requestID := apierror.GetRequestID(c)

	switch {
	case errors.Is(err, service.ErrNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, resource, id))
	case errors.Is(err, service.ErrInvalidRange):
		apierror.WriteProblem(c, apierror.NewInvalidRangeError(requestID, c.Query("range"), rangeKeys()))
	case errors.Is(err, service.ErrInvalidInput):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "body", Message: validationMessage(err), Code: "invalid"},
		}))
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			logger.Err(err),
			logger.String("path", c.Request.URL.Path),
		)
		_ = c.Error(err)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}

// validationMessage strips the sentinel prefix from a wrapped validation error
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
}

func writeBindError(c *gin.Context, err error) {
	apierror.WriteProblem(c, apierror.NewBadRequestError(
		apierror.GetRequestID(c),
		err.Error(),
		"The request body could not be read",
	))
}

// parseID reads a positive integer path parameter, writing a problem
// response and returning false when it is malformed.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apierror.WriteProblem(c, apierror.NewBadRequestError(
			apierror.GetRequestID(c),
			"'"+raw+"' is not a valid "+name,
			"Invalid request format",
		))
		return 0, false
	}
	return id, true
}

func rangeKeys() []string {
	ranges := models.TrendRanges()
	keys := make([]string, len(ranges))
	for i, r := range ranges {
		keys[i] = string(r)
	}
	return keys
}
