// Package domainerrors provides coded errors for the domain tier.
//
// Services return these so transport layers can translate failures into HTTP
// statuses without string matching. Stores and other infrastructure return
// pkg/platform/sentinel errors instead; services translate at the boundary.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping.
type Code string

const (
	// CodeBadRequest marks a malformed or unparseable request.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidInput marks input that parsed but violates a validation rule.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks a lookup for an entity that does not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict marks an operation rejected by the entity's current state.
	CodeConflict Code = "conflict"
	// CodeUnavailable marks a dependency that is temporarily unreachable.
	CodeUnavailable Code = "unavailable"
	// CodeInternal marks an unexpected failure; the message is safe to expose.
	CodeInternal Code = "internal"
)

// Error is a domain error with a classification code and a human-readable,
// field-specific message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool { return HasCode(err, code) }

// MessageOf extracts the user-facing message from a domain error, or the plain
// error text when err is not coded.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// ToHTTPStatus maps a code to an HTTP status for transport layers.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
