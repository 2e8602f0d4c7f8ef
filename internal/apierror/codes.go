package apierror

// Error type URIs following the urn:remindr:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:remindr:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:remindr:error:not_found"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "urn:remindr:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:remindr:error:rate_limit"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:remindr:error:internal"

	// TypeInvalidRange indicates an unsupported analytics range (400)
	TypeInvalidRange = "urn:remindr:error:invalid_range"

	// TypeInvalidIdempotencyKey indicates a malformed Idempotency-Key header (400)
	TypeInvalidIdempotencyKey = "urn:remindr:error:invalid_idempotency_key"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:remindr:error:bad_request"

	// TypeServiceUnavailable indicates a backing store is unreachable (503)
	TypeServiceUnavailable = "urn:remindr:error:service_unavailable"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation            = "Validation Error"
	TitleNotFound              = "Resource Not Found"
	TitleConflict              = "Resource Conflict"
	TitleRateLimit             = "Rate Limit Exceeded"
	TitleInternal              = "Internal Server Error"
	TitleInvalidRange          = "Invalid Range"
	TitleInvalidIdempotencyKey = "Invalid Idempotency Key"
	TitleBadRequest            = "Bad Request"
	TitleServiceUnavailable    = "Service Unavailable"
)
