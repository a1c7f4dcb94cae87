package project

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes project errors.
type ErrorCode string

const (
	// ErrCodeEmptyName indicates a project was created with a blank name.
	ErrCodeEmptyName ErrorCode = "EMPTY_NAME"

	// ErrCodeInvalidStyleValue indicates a style profile value escaped
	// its normalized range.
	ErrCodeInvalidStyleValue ErrorCode = "INVALID_STYLE_VALUE"

	// ErrCodeInvalidOverride indicates a class override parameter set
	// failed validation.
	ErrCodeInvalidOverride ErrorCode = "INVALID_OVERRIDE"
)

// Error represents a project or style profile violation.
type Error struct {
	Code    ErrorCode
	Field   string
	Value   float64
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s=%v)", e.Code, e.Message, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the project error code from err, or "" if err is not
// a project error.
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
