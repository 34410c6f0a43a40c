package service

import "errors"

// ErrNotFound covers every lookup by an unknown business identifier.
var ErrNotFound = errors.New("record not found")

// ValidationError rejects bad input, tagged with the offending field
// when the rule can be pinned to one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// ConflictError reports a unique-key collision. Retryable marks the
// allocator race on medicine creation, where the caller can simply
// resubmit and win the next id.
type ConflictError struct {
	Field     string
	Message   string
	Retryable bool
}

func (e *ConflictError) Error() string { return e.Message }
