// Package errors provides standardized error handling for the dashboard's
// backend calls and client-side guards.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Authentication failures resolve to a login redirect, never a retry.
	ErrCodeAuthRequired   ErrorCode = "AUTH_REQUIRED"
	ErrCodeSessionExpired ErrorCode = "SESSION_EXPIRED"

	// Transport and backend failures are retryable, but only by the user
	// pressing the action again. Nothing retries automatically.
	ErrCodeNetworkError  ErrorCode = "NETWORK_ERROR"
	ErrCodeBackendStatus ErrorCode = "BACKEND_STATUS"

	// Client-side pre-flight failures. The request is never sent.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeSerializationError ErrorCode = "SERIALIZATION_ERROR"
	ErrCodeHTTPRequestError   ErrorCode = "HTTP_REQUEST_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Redirect  string                 `json:"redirect,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewAuthRequiredError creates a non-retryable error carrying the login path
// the caller must redirect to.
func NewAuthRequiredError(loginPath string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthRequired,
		Message:   "Authentication required",
		Details:   "no valid session credential",
		Retryable: false,
		Redirect:  loginPath,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionExpiredError creates a non-retryable error for a rejected or
// expired credential (401 from the backend).
func NewSessionExpiredError(loginPath, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionExpired,
		Message:   "Session expired or rejected",
		Details:   details,
		Retryable: false,
		Redirect:  loginPath,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkError creates a retryable transport error.
func NewNetworkError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkError,
		Message:   "Unable to reach the backend",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendStatusError creates a retryable error for a non-2xx response
// other than 401. The body is informational only; the client behaves the
// same for every failure status.
func NewBackendStatusError(operation string, status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendStatus,
		Message:   fmt.Sprintf("Backend returned status %d", status),
		Details:   fmt.Sprintf("operation: %s, body: %s", operation, body),
		Retryable: true,
		Metadata:  map[string]interface{}{"status": status},
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable client-side validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSerializationError creates a non-retryable encode/decode error.
func NewSerializationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSerializationError,
		Message:   "Failed to encode or decode payload",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewHTTPRequestError creates a retryable request construction error.
func NewHTTPRequestError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHTTPRequestError,
		Message:   "Failed to build HTTP request",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError normalizes any error to a StandardError.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsAuthError reports whether the error must resolve to a login redirect.
func IsAuthError(err error) bool {
	stdErr := AsStandardError(err)
	return stdErr.Code == ErrCodeAuthRequired || stdErr.Code == ErrCodeSessionExpired
}

// IsRetryable reports whether a user-initiated retry of the same action
// could succeed.
func IsRetryable(err error) bool {
	return AsStandardError(err).Retryable
}

// RedirectPath returns the login path an auth error carries, or "".
func RedirectPath(err error) string {
	return AsStandardError(err).Redirect
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "AUTH") || strings.Contains(codeStr, "SESSION"):
		return "AUTH"
	case strings.Contains(codeStr, "NETWORK") || strings.Contains(codeStr, "BACKEND") || strings.Contains(codeStr, "HTTP"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
