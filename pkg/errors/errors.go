// Package errors provides structured error types for the termdeck renderer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the renderer and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes name the failure classes the rendering pipeline distinguishes:
//   - UNKNOWN_STYLE: a style-table lookup missed
//   - UNSUPPORTED_NODE: a document node reached dispatch with no rule
//   - EXTERNAL_TOOL: the banner renderer, highlighter, or size query failed
//   - IO_ERROR: writing a slide unit or manifest failed
//   - INVALID_INPUT: bad options or source input
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownStyle, "no style named %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownStyle) {
//	    // Handle style-table miss
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExternalTool, origErr, "banner %q", text)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"

	// Rendering errors
	ErrCodeUnknownStyle    Code = "UNKNOWN_STYLE"
	ErrCodeUnsupportedNode Code = "UNSUPPORTED_NODE"

	// External collaborator errors (banner, highlighter, terminal size)
	ErrCodeExternalTool Code = "EXTERNAL_TOOL"

	// Artifact errors
	ErrCodeIO       Code = "IO_ERROR"
	ErrCodeNotFound Code = "NOT_FOUND"

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
