package export

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes export configuration errors.
type ErrorCode string

const (
	ErrCodeInvalidLODConfig      ErrorCode = "INVALID_LOD_CONFIG"
	ErrCodeInvalidMaterialConfig ErrorCode = "INVALID_MATERIAL_CONFIG"
	ErrCodeInvalidNamingConfig   ErrorCode = "INVALID_NAMING_CONFIG"
	ErrCodeIncompatibleSettings  ErrorCode = "INCOMPATIBLE_SETTINGS"
)

// Error represents an export configuration violation.
type Error struct {
	Code   ErrorCode
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// CodeOf extracts the export error code from err, or "" if err is not
// an export error.
func CodeOf(err error) ErrorCode {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}
