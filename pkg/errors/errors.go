// Package errors provides the error types returned by the AMaaS SDK.
// Every error surfaced by a parser, a façade or the transport is an *AppError,
// so callers can branch on Code with errors.As.
package errors

import "net/http"

// AppError represents a structured SDK error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an *AppError with the same code, so wrapped
// copies still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithStatus creates a new AppError carrying the given HTTP status code and internal error.
func WithStatus(sentinel *AppError, statusCode int, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: statusCode,
		Internal:   internal,
	}
}

// Transport errors. These are surfaced to façade callers without interpretation.
var (
	ErrTransport    = &AppError{Code: "TRANSPORT_ERROR", Message: "Request to the AMaaS API failed", StatusCode: http.StatusBadGateway}
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrNotFound     = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
)

// Request and payload errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInvalidPayload = &AppError{Code: "INVALID_PAYLOAD", Message: "Malformed wire record", StatusCode: http.StatusUnprocessableEntity}
)

// Contract errors indicate a defect in the calling code rather than bad data.
var (
	ErrUnknownChildKind = &AppError{Code: "UNKNOWN_CHILD_KIND", Message: "Child type not defined", StatusCode: http.StatusInternalServerError}
)
