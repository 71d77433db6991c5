// Package errors provides structured error types for labelsheet.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
//   - INVALID_*: Input validation failures, reported before any layout work
//   - UNKNOWN_FORMAT: Label format identifier not in the registry
//   - CAPACITY_EXCEEDED: Request does not fit the allowed number of sheets
//   - QR_ENCODING_FAILED: A single QR symbol could not be encoded (recovered per cell)
//   - RENDERING_FAILED: The page renderer could not produce a document
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "count must be >= 0, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeRendering, origErr, "write pdf")
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
	ErrCodeInvalidConfig   Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeUnknownFormat   Code = "UNKNOWN_FORMAT"
	ErrCodeCapacity        Code = "CAPACITY_EXCEEDED"
	ErrCodeUnsupportedType Code = "UNSUPPORTED_OUTPUT"

	// Generation errors
	ErrCodeQREncoding Code = "QR_ENCODING_FAILED"
	ErrCodeRendering  Code = "RENDERING_FAILED"

	// Resource errors
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

// IsUserError reports whether err was caused by the caller's input rather than
// by a failure while generating output.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeInvalidInput, ErrCodeUnknownFormat,
		ErrCodeCapacity, ErrCodeUnsupportedType:
		return true
	}
	return false
}

// UnknownFormatError reports a format identifier that is not registered.
// Known lists the valid identifiers so callers can offer guidance.
type UnknownFormatError struct {
	ID    string
	Known []string
}

// Error implements the error interface.
func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("label format %q is not supported (available: %s)", e.ID, joinIDs(e.Known))
}

// Code returns the error code for this error type.
func (e *UnknownFormatError) Code() Code {
	return ErrCodeUnknownFormat
}

// NewUnknownFormat wraps an UnknownFormatError in a coded *Error.
func NewUnknownFormat(id string, known []string) *Error {
	cause := &UnknownFormatError{ID: id, Known: known}
	return &Error{Code: ErrCodeUnknownFormat, Message: cause.Error(), Cause: cause}
}

// KnownFormats returns the valid format identifiers attached to an unknown
// format error, or nil when err is not one.
func KnownFormats(err error) []string {
	var e *UnknownFormatError
	if errors.As(err, &e) {
		return e.Known
	}
	return nil
}

func joinIDs(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	s := ids[0]
	for _, id := range ids[1:] {
		s += ", " + id
	}
	return s
}
