// Package errors defines stable error codes for all cix failure modes.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InvalidArgument indicates malformed request parameters
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// FileTooLarge indicates a file exceeds the configured size limit
	FileTooLarge ErrorCode = "FILE_TOO_LARGE"
	// FileExcluded indicates a file matched an exclusion pattern
	FileExcluded ErrorCode = "FILE_EXCLUDED"
	// FileUnreadable indicates a permission or IO failure reading a file
	FileUnreadable ErrorCode = "FILE_UNREADABLE"
	// GitUnavailable indicates git is missing or this is not a repository
	GitUnavailable ErrorCode = "GIT_UNAVAILABLE"
	// GitCommandFailed indicates a git invocation exited non-zero
	GitCommandFailed ErrorCode = "GIT_COMMAND_FAILED"
	// Timeout indicates an operation exceeded its deadline
	Timeout ErrorCode = "TIMEOUT"
	// WatcherStopped indicates a monitoring call against a stopped watcher
	WatcherStopped ErrorCode = "WATCHER_STOPPED"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// CixError represents a cix error with a stable code and optional details
type CixError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new CixError
func New(code ErrorCode, message string, cause error) *CixError {
	return &CixError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *CixError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CixError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *CixError) WithDetails(details interface{}) *CixError {
	e.Details = details
	return e
}

// CodeOf returns the error code of err, or InternalError if err is not a
// CixError.
func CodeOf(err error) ErrorCode {
	var ce *CixError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	return InternalError
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var ce *CixError
	if stderrors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// IsSkip reports whether err is a normal indexing skip (excluded or
// oversized files). Skips are recorded in stats, never propagated as
// failures.
func IsSkip(err error) bool {
	return IsCode(err, FileExcluded) || IsCode(err, FileTooLarge)
}
