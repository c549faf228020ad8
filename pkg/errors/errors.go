// Package errors provides structured error types for modorder.
//
// Errors carry a machine-readable [Code] so the CLI and the HTTP API can
// report the same failure consistently:
//   - INVALID_*: input validation failures (mod ids, manifests, profiles)
//   - *_NOT_FOUND: missing resources
//   - INTERNAL_*: unexpected internal errors
//
// Resolution problems (cycles, missing or conflicting dependencies) are not
// errors. They are reported as warnings by the resolve package and never
// surface through this package.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidModID, "invalid mod id: %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidModID) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, origErr, "parse %s", path)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidModID    Code = "INVALID_MOD_ID"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeDuplicateMod    Code = "DUPLICATE_MOD"
	ErrCodeInvalidProfile  Code = "INVALID_PROFILE"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeProfileNotFound Code = "PROFILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsValidation reports whether err carries one of the INVALID_* or
// DUPLICATE_* codes, i.e. the caller supplied bad input.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidModID, ErrCodeInvalidManifest,
		ErrCodeDuplicateMod, ErrCodeInvalidProfile:
		return true
	}
	return false
}

// IsNotFound reports whether err carries a *_NOT_FOUND code.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeProfileNotFound:
		return true
	}
	return false
}
