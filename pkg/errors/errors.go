// Package errors provides structured error types for linkdown.
//
// Every failure that reaches the command line carries a machine-readable
// [Code] plus a message naming the offending path and the operation that was
// attempted. Codes map onto the failure classes of snapshot generation:
//
//   - MALFORMED_TOPOLOGY: the layer-1 topology file is missing, unreadable or
//     not a valid edge list. Fatal; nothing is written.
//   - DESTINATION_CONFLICT: a file already exists where a hard link should be
//     created. Recovered locally: the file is skipped with a warning.
//   - FILESYSTEM: a directory could not be created, removed or written. Fatal
//     for the derivative being built.
//   - INVALID_*: caller input rejected before any work starts.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPattern, "bad link pattern %q", p)
//	if errors.Is(err, errors.ErrCodeInvalidPattern) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFilesystem, origErr, "mkdir %s", dir)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPattern Code = "INVALID_PATTERN"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Snapshot errors
	ErrCodeMalformedTopology   Code = "MALFORMED_TOPOLOGY"
	ErrCodeDestinationConflict Code = "DESTINATION_CONFLICT"
	ErrCodeFilesystem          Code = "FILESYSTEM"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// Joined errors (see [errors.Join]) match if any member matches.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) && e.Code == code {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			if Is(inner, code) {
				return true
			}
		}
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
