// file: internal/services/errors.go
package services

import (
	"errors"
	"finlit/internal/validation"
	"fmt"
	"net/http"
)

// ===============================
// ERROR TYPES
// ===============================

// ServiceError is a structured service-layer error carrying a machine
// code and the HTTP status the API layer should map it to.
type ServiceError struct {
	Type       string         `json:"type"`
	Message    string         `json:"message"`
	Code       string         `json:"code,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"-"`
	Cause      error          `json:"-"`
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// GetStatusCode returns the HTTP status code for this error.
func (e *ServiceError) GetStatusCode() int {
	if e.StatusCode > 0 {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// ===============================
// MACHINE CODES
// ===============================

// Stable codes clients branch on. Messages can change; these cannot.
const (
	CodeAlreadyRegistered  = "ALREADY_REGISTERED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeAlreadyCompleted   = "ALREADY_COMPLETED"
	CodeQuizMismatch       = "QUIZ_ANSWER_MISMATCH"
)

// ===============================
// ERROR CONSTRUCTORS
// ===============================

// NewValidationError creates a bad-request error.
func NewValidationError(message string, cause error) *ServiceError {
	e := &ServiceError{
		Type:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
	if cause != nil {
		e.Details = map[string]any{"fields": validation.Describe(cause)}
	}
	return e
}

// NewBusinessError creates a business rule violation error.
func NewBusinessError(message, code string) *ServiceError {
	return &ServiceError{
		Type:       "BUSINESS_ERROR",
		Message:    message,
		Code:       code,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{
		Type:       "NOT_FOUND",
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message, code string) *ServiceError {
	return &ServiceError{
		Type:       "UNAUTHORIZED",
		Message:    message,
		Code:       code,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewConflictError creates a conflict error.
func NewConflictError(message, code string) *ServiceError {
	return &ServiceError{
		Type:       "CONFLICT",
		Message:    message,
		Code:       code,
		StatusCode: http.StatusConflict,
	}
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *ServiceError {
	return &ServiceError{
		Type:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewServiceUnavailableError creates a service unavailable error.
func NewServiceUnavailableError(message string) *ServiceError {
	return &ServiceError{
		Type:       "SERVICE_UNAVAILABLE",
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
	}
}

// ===============================
// ERROR UTILITIES
// ===============================

// GetServiceError extracts a ServiceError from an error chain, wrapping
// anything else as a generic internal error so no raw error text leaks
// to clients.
func GetServiceError(err error) *ServiceError {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}
	return NewInternalError("an internal error occurred")
}

// IsErrorType reports whether err carries the given service error type.
func IsErrorType(err error, errorType string) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Type == errorType
	}
	return false
}

// IsNotFoundError reports whether err is a not found error.
func IsNotFoundError(err error) bool {
	return IsErrorType(err, "NOT_FOUND")
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return IsErrorType(err, "VALIDATION_ERROR")
}

// IsConflictError reports whether err is a conflict error.
func IsConflictError(err error) bool {
	return IsErrorType(err, "CONFLICT")
}

// HasCode reports whether err carries the given machine code.
func HasCode(err error, code string) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code == code
	}
	return false
}
