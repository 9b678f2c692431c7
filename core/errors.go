package core

import "github.com/pkg/errors"

// FieldError ties a validation message to the JSON field it concerns.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries per-field messages. The API error handler renders
// its Fields as a field → message map with a 400 status.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown flags an integrity problem the API server must not keep running
// through. The error handler checks IsShutdown and triggers a graceful stop.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
