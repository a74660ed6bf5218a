package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
	Kind() string
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found.
	// Kept distinct from AccessDeniedError: a gated resource that exists
	// is reported as denied, never as absent.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// AccessDeniedError indicates an authentication or ownership failure
	AccessDeniedError struct {
		Message string
	}

	// InvalidReferenceError indicates a foreign-key target (idea, parent
	// comment) that does not exist
	InvalidReferenceError struct {
		Message string
	}

	// InternalError indicates a store or infrastructure failure
	InternalError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string         { return e.Message }
func (e *ValidationError) Error() string       { return e.Message }
func (e *AccessDeniedError) Error() string     { return e.Message }
func (e *InvalidReferenceError) Error() string { return e.Message }
func (e *InternalError) Error() string         { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int         { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int       { return http.StatusBadRequest }
func (e *AccessDeniedError) StatusCode() int     { return http.StatusForbidden }
func (e *InvalidReferenceError) StatusCode() int { return http.StatusUnprocessableEntity }
func (e *InternalError) StatusCode() int         { return http.StatusInternalServerError }

// Kind implementations - stable machine-readable error names on the wire
func (e *NotFoundError) Kind() string         { return "NotFound" }
func (e *ValidationError) Kind() string       { return "ValidationError" }
func (e *AccessDeniedError) Kind() string     { return "AccessDenied" }
func (e *InvalidReferenceError) Kind() string { return "InvalidReference" }
func (e *InternalError) Kind() string         { return "InternalError" }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrAccessDenied     = errors.New("access denied")
	ErrInvalidReference = errors.New("invalid reference")
)

// Is implementations let the typed errors match their sentinels
func (e *NotFoundError) Is(target error) bool         { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool       { return target == ErrValidation }
func (e *AccessDeniedError) Is(target error) bool     { return target == ErrAccessDenied }
func (e *InvalidReferenceError) Is(target error) bool { return target == ErrInvalidReference }
