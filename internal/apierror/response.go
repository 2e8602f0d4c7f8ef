package apierror

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// RequestIDKey is the gin context key holding the request correlation ID
const RequestIDKey = "request_id"

// WriteProblem writes a ProblemDetails response to the gin context and aborts
// the handler chain. It sets the correct Content-Type header and, if
// RetryAfter is set, also sets the Retry-After header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)

	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}

	c.AbortWithStatusJSON(problem.Status, problem)
}

// GetRequestID extracts the request ID from the gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	if c.Request == nil {
		return ""
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError creates a 400 Bad Request response for validation failures.
// Multiple field errors can be included to report all validation issues at once.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "One or more fields failed validation",
		RequestID:   requestID,
		UserMessage: "Please check your input and try again",
		Errors:      errors,
	}
}

// NewNotFoundError creates a 404 Not Found response.
func NewNotFoundError(requestID, resource, id string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("%s with ID '%s' was not found", resource, id),
		RequestID:   requestID,
		UserMessage: fmt.Sprintf("The requested %s could not be found", strings.ToLower(resource)),
	}
}

// NewConflictError creates a 409 Conflict response.
func NewConflictError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeConflict,
		Title:       TitleConflict,
		Status:      http.StatusConflict,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: "This action conflicts with existing data",
	}
}

// NewRateLimitError creates a 429 Too Many Requests response.
// retryAfter specifies seconds until the client should retry.
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeRateLimit,
		Title:       TitleRateLimit,
		Status:      http.StatusTooManyRequests,
		Detail:      "Too many requests, please slow down",
		RequestID:   requestID,
		UserMessage: "You're making requests too quickly. Please wait a moment.",
		RetryAfter:  &retryAfter,
	}
}

// NewInternalError creates a 500 Internal Server Error response.
// The detail is generic so internal failures never leak to clients.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}

// NewBadRequestError creates a 400 Bad Request response for malformed input.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewInvalidRangeError creates a 400 response for an unknown analytics range.
// allowed lists the accepted range keys.
func NewInvalidRangeError(requestID, value string, allowed []string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidRange,
		Title:       TitleInvalidRange,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("range %q is not one of %s", value, strings.Join(allowed, ", ")),
		RequestID:   requestID,
		UserMessage: "Please pick one of the available time ranges",
		Errors: []FieldError{
			{Field: "range", Message: "unsupported range", Code: "invalid_range"},
		},
	}
}

// NewInvalidIdempotencyKeyError creates a 400 response for a malformed
// Idempotency-Key header.
func NewInvalidIdempotencyKeyError(requestID, value string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidIdempotencyKey,
		Title:       TitleInvalidIdempotencyKey,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Idempotency-Key '%s' is not a valid UUID", value),
		RequestID:   requestID,
		UserMessage: "Invalid request format",
		Errors: []FieldError{
			{Field: "Idempotency-Key", Message: "must be a valid UUID", Code: "invalid_uuid"},
		},
	}
}

// NewServiceUnavailableError creates a 503 Service Unavailable response.
func NewServiceUnavailableError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeServiceUnavailable,
		Title:       TitleServiceUnavailable,
		Status:      http.StatusServiceUnavailable,
		Detail:      "The service is temporarily unavailable",
		RequestID:   requestID,
		UserMessage: "The service is temporarily unavailable. Please try again later.",
		RetryAfter:  &retryAfter,
	}
}
