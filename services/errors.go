package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all services. Controllers match with errors.Is
// and translate to HTTP status codes.
var (
	// ErrNotFound marks a missing local record.
	ErrNotFound = errors.New("record not found")
	// ErrConflict marks a uniqueness violation (duplicate aminer_id).
	ErrConflict = errors.New("duplicate record")
	// ErrUpstream marks a provider failure: non-success status, malformed
	// body, or an unexpected envelope shape.
	ErrUpstream = errors.New("provider error")
)

// ValidationError reports malformed or missing input rejected before any
// storage or provider call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
