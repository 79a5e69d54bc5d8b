package apperrors

import "fmt"

// Error codes
const (
	CodeValidation        = "VALIDATION"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeAuth              = "AUTH"
	CodeBusy              = "BUSY"
	CodeExternalService   = "EXTERNAL_SERVICE"
)

// Error is a domain-level error with a stable code
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error carrying the same code, so wrapped and
// custom-message errors still satisfy errors.Is against the sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New creates a new domain error
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Common domain errors
var (
	ErrValidation        = New(CodeValidation, "invalid input provided")
	ErrNotFound          = New(CodeNotFound, "resource not found")
	ErrConflict          = New(CodeConflict, "operation conflicts with current state")
	ErrInvalidTransition = New(CodeInvalidTransition, "status transition not allowed")
	ErrInsufficientStock = New(CodeInsufficientStock, "insufficient stock available")
	ErrAuth              = New(CodeAuth, "invalid credentials")
	ErrBusy              = New(CodeBusy, "operation already in progress")
	ErrExternalService   = New(CodeExternalService, "external service unavailable")
)

// Validationf builds a validation error with a formatted message
func Validationf(format string, args ...interface{}) *Error {
	return New(CodeValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds a not-found error with a formatted message
func NotFoundf(format string, args ...interface{}) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

// Conflictf builds a conflict error with a formatted message
func Conflictf(format string, args ...interface{}) *Error {
	return New(CodeConflict, fmt.Sprintf(format, args...))
}

// Authf builds an auth error with a formatted message
func Authf(format string, args ...interface{}) *Error {
	return New(CodeAuth, fmt.Sprintf(format, args...))
}

// Externalf builds an external-service error with a formatted message
func Externalf(format string, args ...interface{}) *Error {
	return New(CodeExternalService, fmt.Sprintf(format, args...))
}

// CodeOf returns the error code, or empty string for non-domain errors
func CodeOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
