// Package errors provides the application error type of the finsight API.
// Service-layer failures are reported as *AppError so handlers can answer
// with a stable code and a safe message; internal causes stay in Internal
// and are logged, never returned to clients.
package errors

import (
	"errors"
	"net/http"

	"finsight/internal/finance"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

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

// FromFinance translates an engine error. Validation failures become
// ErrValidationFailed carrying the validation message; anything else is
// wrapped as an internal error.
func FromFinance(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	var vErr *finance.ValidationError
	if errors.As(err, &vErr) {
		e := WithMessage(ErrValidationFailed, err.Error())
		e.Internal = err
		return e
	}
	return Wrap(ErrInternalServer, err)
}

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Finance errors.
var (
	ErrValidationFailed = &AppError{Code: "VALIDATION_FAILED", Message: "Financial records failed validation", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidStrategy  = &AppError{Code: "INVALID_STRATEGY", Message: "Strategy must be snowball or avalanche", StatusCode: http.StatusBadRequest}
)

// Record errors.
var (
	ErrGoalNotFound  = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrAssetNotFound = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
)
