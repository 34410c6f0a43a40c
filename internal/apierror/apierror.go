// Package apierror provides the error response envelopes for the API.
// All 4xx/5xx bodies go through this package so clients see a consistent
// shape and internals (SQL errors, stack traces) never leak.
package apierror

// APIError is the envelope for client errors. Field is set when the
// failure can be pinned to a single input field.
type APIError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

func NewField(msg, field string) *APIError {
	return &APIError{Message: msg, Field: field}
}

// ServerError is the envelope for 5xx responses. Err carries a short
// cause string, never a stack trace.
type ServerError struct {
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
}

func NewServer(msg string, err error) *ServerError {
	s := &ServerError{Message: msg}
	if err != nil {
		s.Err = err.Error()
	}
	return s
}
