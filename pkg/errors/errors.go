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
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Scheduling errors
	ErrCyclicDependency ErrorCode = "CYCLIC_DEPENDENCY"
	ErrHookFailed       ErrorCode = "HOOK_FAILED"
	ErrOrderViolation   ErrorCode = "ORDER_VIOLATION"

	// Template errors
	ErrUnknownTemplate ErrorCode = "UNKNOWN_TEMPLATE"

	// Conditional source errors
	ErrMissingCondition ErrorCode = "MISSING_CONDITION"
	ErrConditionEval    ErrorCode = "CONDITION_EVAL"
)

// ProjectError represents a structured error with code and details
type ProjectError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ProjectError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ProjectError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ProjectError) Is(target error) bool {
	var targetErr *ProjectError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ProjectError with the given code and message
func New(code ErrorCode, message string) *ProjectError {
	return &ProjectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ProjectError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ProjectError {
	return &ProjectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ProjectError
func Wrap(err error, code ErrorCode, message string) *ProjectError {
	if err == nil {
		return nil
	}
	return &ProjectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ProjectError {
	if err == nil {
		return nil
	}
	return &ProjectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ProjectError) WithDetail(key string, value interface{}) *ProjectError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ProjectError) WithDetails(details map[string]interface{}) *ProjectError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code. Wrapped
// ProjectErrors are searched too, so a hook failure caused by a cycle
// reports both codes.
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var projErr *ProjectError
		if !errors.As(err, &projErr) {
			return false
		}
		if projErr.Code == code {
			return true
		}
		err = projErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ProjectError
func GetErrorCode(err error) ErrorCode {
	var projErr *ProjectError
	if errors.As(err, &projErr) {
		return projErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ProjectError
func GetErrorDetails(err error) map[string]interface{} {
	var projErr *ProjectError
	if errors.As(err, &projErr) {
		return projErr.Details
	}
	return nil
}

// FindError returns the first ProjectError in the chain carrying code, or nil.
func FindError(err error, code ErrorCode) *ProjectError {
	for err != nil {
		var projErr *ProjectError
		if !errors.As(err, &projErr) {
			return nil
		}
		if projErr.Code == code {
			return projErr
		}
		err = projErr.Wrapped
	}
	return nil
}
