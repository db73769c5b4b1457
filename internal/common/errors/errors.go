// Package errors provides standardized error handling for the HTTP API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Caller sent semantically wrong data; message is user-facing.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// The store rejected a well-formed insert through a server-side rule
	// (SIGNAL from a trigger, surfaced by MySQL as errno 1644).
	ErrCodeConstraintViolation ErrorCode = "CONSTRAINT_VIOLATION"

	// The store is unreachable or overloaded during a write.
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// A catalog read failed for the same class of reason.
	ErrCodeDependencyUnavailable ErrorCode = "DEPENDENCY_UNAVAILABLE"

	// A mail channel failed; never surfaced to the HTTP caller.
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable validation error.
// The message is shown to the caller verbatim.
func NewValidationFailedError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConstraintViolationError creates a non-retryable error for a
// store-enforced business rule. The store message is forwarded when present.
func NewConstraintViolationError(storeMessage string) *StandardError {
	msg := storeMessage
	if msg == "" {
		msg = "Validación de datos falló."
	}
	return &StandardError{
		Code:      ErrCodeConstraintViolation,
		Message:   msg,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageUnavailableError creates a retryable storage error.
// Details keep the driver error for logs; Message stays generic.
func NewStorageUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   "Error al guardar la solicitud.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDependencyUnavailableError creates a retryable catalog read error.
func NewDependencyUnavailableError(catalog string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDependencyUnavailable,
		Message:   fmt.Sprintf("Error al obtener %s", catalog),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates an error for a failed mail channel.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   fmt.Sprintf("Failed to send %s notification", channel),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus maps an error code to the status the API responds with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeConstraintViolation:
		return http.StatusBadRequest
	case ErrCodeStorageUnavailable, ErrCodeDependencyUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the error is expected caller traffic
// (logged at info, not error).
func IsClientError(code ErrorCode) bool {
	return HTTPStatus(code) == http.StatusBadRequest
}

// AsStandardError normalizes any error to a StandardError. Constructors
// keep 5xx messages generic, so Message is always safe to show the caller.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}
