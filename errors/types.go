package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Command execution errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// Publish errors
	ErrCodePublishFailed ErrorCode = "PUBLISH_FAILED"
	ErrCodePublishEmpty  ErrorCode = "PUBLISH_EMPTY"
	ErrCodePromptAborted ErrorCode = "PROMPT_ABORTED"
	ErrCodeAuthFailed    ErrorCode = "AUTH_FAILED"

	// Client state errors
	ErrCodeStoreAccess ErrorCode = "STORE_ACCESS"

	// Console errors
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// DraugrError represents a structured error with context
type DraugrError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *DraugrError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DraugrError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *DraugrError) WithDetail(key string, value interface{}) *DraugrError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *DraugrError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new DraugrError
func New(code ErrorCode, message string) *DraugrError {
	return &DraugrError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a DraugrError
func Wrap(err error, code ErrorCode, message string) *DraugrError {
	return &DraugrError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific DraugrError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	draugrErr, ok := err.(*DraugrError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	if draugrErr.Code == code {
		return true
	}
	return Is(draugrErr.Cause, code)
}

// GetCode extracts the outermost error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	draugrErr, ok := err.(*DraugrError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return draugrErr.Code
}
