package param

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes parameter errors.
type ErrorCode string

const (
	// ErrCodeInvalidBounds indicates a bounded parameter was constructed
	// with min >= max.
	ErrCodeInvalidBounds ErrorCode = "INVALID_BOUNDS"

	// ErrCodeOutOfRange indicates a persisted value escaped its declared
	// bounds. Normal mutation paths clamp, so this only fires on
	// corrupted or forged state.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
)

// Error represents a parameter schema violation.
//
// Errors are raised at construction boundaries (InvalidBounds) or by
// validation of loaded state (OutOfRange). They are never retried and
// never silently corrected; clamping is a distinct, intentional code
// path.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Field names the offending parameter, when known.
	Field string

	// Value is the offending value (OutOfRange only).
	Value float64

	// Min and Max are the declared bounds.
	Min float64
	Max float64
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeInvalidBounds:
		return fmt.Sprintf("%s: min=%v max=%v", e.Code, e.Min, e.Max)
	case ErrCodeOutOfRange:
		return fmt.Sprintf("%s: %s=%v outside [%v, %v]", e.Code, e.Field, e.Value, e.Min, e.Max)
	}
	return string(e.Code)
}

// IsOutOfRange returns true if the error is an out-of-range validation
// failure. Uses errors.As to handle wrapped errors.
func IsOutOfRange(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeOutOfRange
	}
	return false
}

// IsInvalidBounds returns true if the error is an invalid-bounds
// construction failure.
func IsInvalidBounds(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeInvalidBounds
	}
	return false
}

func newInvalidBounds(min, max float64) *Error {
	return &Error{Code: ErrCodeInvalidBounds, Min: min, Max: max}
}

func newOutOfRange(field string, value, min, max float64) *Error {
	return &Error{Code: ErrCodeOutOfRange, Field: field, Value: value, Min: min, Max: max}
}
