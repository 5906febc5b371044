package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// File reading errors
	ErrGlob     ErrorCode = "GLOB"
	ErrFileRead ErrorCode = "FILE_READ"
	ErrParse    ErrorCode = "PARSE"

	// Pattern tree errors
	ErrReservedProperty ErrorCode = "RESERVED_PROPERTY"

	// Rendering errors
	ErrLayoutNotFound ErrorCode = "LAYOUT_NOT_FOUND"
	ErrTemplateApply  ErrorCode = "TEMPLATE_APPLY"

	// Output errors
	ErrOutputWrite ErrorCode = "OUTPUT_WRITE"
)

// DrizzleError represents a structured error with code and details
type DrizzleError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DrizzleError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DrizzleError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DrizzleError) Is(target error) bool {
	var targetErr *DrizzleError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DrizzleError with the given code and message
func New(code ErrorCode, message string) *DrizzleError {
	return &DrizzleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DrizzleError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DrizzleError {
	return &DrizzleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DrizzleError
func Wrap(err error, code ErrorCode, message string) *DrizzleError {
	if err == nil {
		return nil
	}
	return &DrizzleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DrizzleError {
	if err == nil {
		return nil
	}
	return &DrizzleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DrizzleError) WithDetail(key string, value interface{}) *DrizzleError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var drizzleErr *DrizzleError
	if errors.As(err, &drizzleErr) {
		return drizzleErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DrizzleError
func GetErrorCode(err error) ErrorCode {
	var drizzleErr *DrizzleError
	if errors.As(err, &drizzleErr) {
		return drizzleErr.Code
	}
	return ErrUnknown
}
