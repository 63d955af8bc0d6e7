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
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Task errors
	ErrTaskUnconfigured ErrorCode = "TASK_UNCONFIGURED"
	ErrSourceMissing    ErrorCode = "SOURCE_MISSING"
	ErrCommandFailed    ErrorCode = "COMMAND_FAILED"

	// Target selection
	ErrNoTarget ErrorCode = "NO_TARGET"

	// FileSystem errors
	ErrFileAccess     ErrorCode = "FILE_ACCESS"
	ErrFileCopy       ErrorCode = "FILE_COPY"
	ErrFileRemove     ErrorCode = "FILE_REMOVE"
	ErrFileWrite      ErrorCode = "FILE_WRITE"
	ErrDirCreate      ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate  ErrorCode = "SYMLINK_CREATE"
	ErrTemplateRender ErrorCode = "TEMPLATE_RENDER"
)

// DotmanError represents a structured error with code and details
type DotmanError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotmanError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotmanError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotmanError) Is(target error) bool {
	var targetErr *DotmanError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotmanError with the given code and message
func New(code ErrorCode, message string) *DotmanError {
	return &DotmanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotmanError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotmanError {
	return &DotmanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotmanError
func Wrap(err error, code ErrorCode, message string) *DotmanError {
	if err == nil {
		return nil
	}
	return &DotmanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotmanError {
	if err == nil {
		return nil
	}
	return &DotmanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotmanError) WithDetail(key string, value interface{}) *DotmanError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code.
// Only the outermost DotmanError in the chain is considered.
func IsErrorCode(err error, code ErrorCode) bool {
	var dotmanErr *DotmanError
	if errors.As(err, &dotmanErr) {
		return dotmanErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any DotmanError in the chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var dotmanErr *DotmanError
		if !errors.As(err, &dotmanErr) {
			return false
		}
		if dotmanErr.Code == code {
			return true
		}
		err = dotmanErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotmanError
func GetErrorCode(err error) ErrorCode {
	var dotmanErr *DotmanError
	if errors.As(err, &dotmanErr) {
		return dotmanErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotmanError
func GetErrorDetails(err error) map[string]interface{} {
	var dotmanErr *DotmanError
	if errors.As(err, &dotmanErr) {
		return dotmanErr.Details
	}
	return nil
}
