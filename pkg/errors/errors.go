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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Command errors
	ErrCommandInvalid ErrorCode = "COMMAND_INVALID"
	ErrParamConvert   ErrorCode = "PARAM_CONVERT"
	ErrUsage          ErrorCode = "USAGE"

	// Input errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrRowsParse ErrorCode = "ROWS_PARSE"
	ErrOutput    ErrorCode = "OUTPUT"
)

// TurbotermError represents a structured error with code and details
type TurbotermError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Wrapped error
}

// Error implements the error interface
func (e *TurbotermError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TurbotermError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TurbotermError) Is(target error) bool {
	var targetErr *TurbotermError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TurbotermError with the given code and message
func New(code ErrorCode, message string) *TurbotermError {
	return &TurbotermError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}
}

// Newf creates a new TurbotermError with a formatted message
func Newf(code ErrorCode, format string, args ...any) *TurbotermError {
	return &TurbotermError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]any),
	}
}

// Wrap wraps an existing error with a TurbotermError
func Wrap(err error, code ErrorCode, message string) *TurbotermError {
	if err == nil {
		return nil
	}
	return &TurbotermError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...any) *TurbotermError {
	if err == nil {
		return nil
	}
	return &TurbotermError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]any),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TurbotermError) WithDetail(key string, value any) *TurbotermError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TurbotermError) WithDetails(details map[string]any) *TurbotermError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var termErr *TurbotermError
	if errors.As(err, &termErr) {
		return termErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TurbotermError
func GetErrorCode(err error) ErrorCode {
	var termErr *TurbotermError
	if errors.As(err, &termErr) {
		return termErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TurbotermError
func GetErrorDetails(err error) map[string]any {
	var termErr *TurbotermError
	if errors.As(err, &termErr) {
		return termErr.Details
	}
	return nil
}