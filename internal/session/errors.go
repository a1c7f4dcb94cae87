package session

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes session errors.
//
// Construction errors (INVALID_PATH, EMPTY_INTENT) surface at object
// creation and are never retried. Referential errors
// (UNKNOWN_VARIATION, DUPLICATE_APPROVAL, DUPLICATE_VARIATION,
// ORPHANED_APPROVAL) are always recoverable by the caller, typically
// by re-querying current variations. SCHEMA_VERSION_MISMATCH is raised
// only on load and means "cannot open this file with this engine
// version" - no partial recovery is attempted.
type ErrorCode string

const (
	ErrCodeInvalidPath           ErrorCode = "INVALID_PATH"
	ErrCodeEmptyIntent           ErrorCode = "EMPTY_INTENT"
	ErrCodeInvalidDimensions     ErrorCode = "INVALID_DIMENSIONS"
	ErrCodeUnknownVariation      ErrorCode = "UNKNOWN_VARIATION"
	ErrCodeDuplicateApproval     ErrorCode = "DUPLICATE_APPROVAL"
	ErrCodeDuplicateVariation    ErrorCode = "DUPLICATE_VARIATION"
	ErrCodeOrphanedApproval      ErrorCode = "ORPHANED_APPROVAL"
	ErrCodeInvalidParameters     ErrorCode = "INVALID_PARAMETERS"
	ErrCodeSchemaVersionMismatch ErrorCode = "SCHEMA_VERSION_MISMATCH"
)

// Error represents a session mutation or validation failure.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// VariationID identifies the affected variation (referential errors).
	VariationID string

	// ApprovedID identifies the affected approval (orphan errors).
	ApprovedID string

	// Path is the offending path (INVALID_PATH).
	Path string

	// Want and Got carry the expected/actual schema versions
	// (SCHEMA_VERSION_MISMATCH).
	Want string
	Got  string

	// Err is the wrapped underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Code == ErrCodeSchemaVersionMismatch:
		return fmt.Sprintf("%s: session schema %q, engine expects %q", e.Code, e.Got, e.Want)
	case e.VariationID != "":
		return fmt.Sprintf("%s: %s (variation=%s)", e.Code, e.Message, e.VariationID)
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the session error code from err, or "" if err is not
// a session error. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// HasCode reports whether err is a session error with the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}
