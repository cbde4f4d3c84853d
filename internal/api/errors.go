package api

import (
	"fmt"
	"net/http"

	apperrors "github.com/logiksutra/bookshelf-cli/internal/errors"
)

// Error is the normalized failure of one gateway call.
//
// Status carries the HTTP status the server answered with; 0 means no
// response was received at all (network failure, timeout, cancellation).
// Message is the server body's message field when present, otherwise the
// per-operation fallback.
type Error struct {
	Status  int    // 0 when no response was received
	Message string
	Op      string // Operation: "login", "listBooks", "createReview", ...
	Err     error  // Underlying transport or decode error, if any
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api %s [%d]: %s", e.Op, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("api %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is maps gateway failures onto the client's domain sentinels so callers
// can branch with errors.Is without importing HTTP status codes.
func (e *Error) Is(target error) bool {
	switch target {
	case apperrors.ErrNetwork:
		return e.Status == 0
	case apperrors.ErrAPI:
		return e.Status != 0
	case apperrors.ErrNotFound:
		return e.Status == http.StatusNotFound
	case apperrors.ErrAuthRequired:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// networkError creates an Error for a request that got no response.
func networkError(op, fallback string, err error) *Error {
	return &Error{Status: 0, Message: fallback, Op: op, Err: err}
}

// statusError creates an Error for a non-2xx response, preferring the
// server-supplied message over the fallback.
func statusError(op, fallback string, status int, serverMessage string) *Error {
	msg := serverMessage
	if msg == "" {
		msg = fallback
	}
	return &Error{Status: status, Message: msg, Op: op}
}
