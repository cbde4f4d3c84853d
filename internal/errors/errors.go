// Package errors provides the Bookshelf client's domain errors with
// machine-readable codes.
//
// Usage:
//
//	// In components - return typed errors
//	if strings.TrimSpace(text) == "" {
//	    return errors.Validation("review text is required")
//	}
//
//	// In the CLI - check with errors.Is
//	if errors.Is(err, errors.ErrAuthRequired) {
//	    fmt.Fprintln(os.Stderr, "please log in first: bookshelf login")
//	    return
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the client.
const (
	// CodeValidation marks input rejected before any network call.
	CodeValidation Code = "VALIDATION"
	// CodeAuthRequired marks an auth-gated action attempted while logged out.
	CodeAuthRequired Code = "AUTH_REQUIRED"
	// CodeAPI marks a request the server answered with a non-2xx status.
	CodeAPI Code = "API"
	// CodeNetwork marks a request that produced no response at all.
	CodeNetwork Code = "NETWORK"
	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "NOT_FOUND"
	// CodeIntegrity marks server data that violates a client invariant,
	// such as two reviews for the same user on one book.
	CodeIntegrity Code = "INTEGRITY"
	// CodeInternal marks everything else.
	CodeInternal Code = "INTERNAL"
)

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation error"}
	ErrAuthRequired = &Error{Code: CodeAuthRequired, Message: "authentication required"}
	ErrAPI          = &Error{Code: CodeAPI, Message: "api error"}
	ErrNetwork      = &Error{Code: CodeNetwork, Message: "network error"}
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrIntegrity    = &Error{Code: CodeIntegrity, Message: "data integrity error"}
	ErrInternal     = &Error{Code: CodeInternal, Message: "internal error"}
)

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// AuthRequired creates an authentication required error.
func AuthRequired(msg string) *Error {
	return &Error{Code: CodeAuthRequired, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Integrity creates a data integrity error.
func Integrity(msg string) *Error {
	return &Error{Code: CodeIntegrity, Message: msg}
}

// Integrityf creates a data integrity error with formatted message.
func Integrityf(format string, args ...any) *Error {
	return &Error{Code: CodeIntegrity, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
