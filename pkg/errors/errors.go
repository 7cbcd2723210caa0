// Package errors provides structured error types for orderkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across commands and libraries
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - MISSING_INPUT: Expected input files are absent
//   - TOOL_*: External tool failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingInput, "attribute file not found: %s", path)
//	if errors.Is(err, errors.ErrCodeMissingInput) {
//	    // Handle missing input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeToolFailed, origErr, "convert %s", src)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidAttribute Code = "INVALID_ATTRIBUTE"
	ErrCodeInvalidNetwork   Code = "INVALID_NETWORK"

	// Missing input errors
	ErrCodeMissingInput Code = "MISSING_INPUT"

	// External tool errors
	ErrCodeToolNotFound Code = "TOOL_NOT_FOUND"
	ErrCodeToolFailed   Code = "TOOL_FAILED"

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
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
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
		return e.Message
	}
	return err.Error()
}

// ToolFailedError carries the full invocation of an external tool that
// terminated with a non-zero status. It is wrapped in an *Error with
// ErrCodeToolFailed so the failing command and status survive the error chain.
type ToolFailedError struct {
	Argv     []string // complete command line, executable first
	ExitCode int      // process exit status
	Stderr   string   // captured standard error, may be empty
}

// Error implements the error interface.
func (e *ToolFailedError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", strings.Join(e.Argv, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}
