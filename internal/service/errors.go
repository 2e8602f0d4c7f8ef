package service

import "errors"

var (
	// ErrNotFound indicates the requested reminder does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a request failed validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRange indicates an unknown trend range selector
	ErrInvalidRange = errors.New("invalid trend range")
	// ErrStaleSnapshot indicates a newer analytics request superseded this one
	// before it finished. The snapshot is still returned to its caller.
	ErrStaleSnapshot = errors.New("analytics snapshot superseded by a newer request")
)
