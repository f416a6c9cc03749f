package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is a custom error type for application errors
type AppError struct {
	Code       string
	Message    string
	StatusCode int // Same rule as HTTP status codes
	Err        error
	Details    map[string]interface{}
}

// Error returns a string representation of the error
func (e AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is implements the errors.Is interface
func (e AppError) Is(target error) bool {
	if target, ok := target.(AppError); ok {
		return target.Code == e.Code
	}
	return false
}

// Unwrap returns the underlying error
func (e AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a single detail to the error
func (e AppError) WithDetail(key string, value interface{}) AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// NewValidationError creates a new validation error
func NewValidationError(message string) AppError {
	return AppError{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) AppError {
	return AppError{
		Code:       CodeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) AppError {
	return AppError{
		Code:       CodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) AppError {
	return AppError{
		Code:       CodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// APIError is a failure reported by the budgeting service, or a transport
// failure translated into the same shape.
type APIError struct {
	StatusCode int
	ID         string
	Name       string
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("YNAB API Error [%d] %s: %s", e.StatusCode, e.Name, e.Detail)
}

// Timeout reports whether the error stands for a request timeout.
func (e *APIError) Timeout() bool {
	return e.StatusCode == http.StatusRequestTimeout && e.ID == "timeout"
}

// NewTimeoutError is the APIError used when a request exceeds its deadline.
func NewTimeoutError() *APIError {
	return &APIError{
		StatusCode: http.StatusRequestTimeout,
		ID:         "timeout",
		Name:       "request_timeout",
		Detail:     "Request to YNAB API timed out. Please try again.",
	}
}

// LookupError means a name did not resolve to any record.
type LookupError struct {
	EntityType string
	Query      string
	Available  []string
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("No %s found matching '%s'.", e.EntityType, e.Query)
	if len(e.Available) > 0 {
		msg += " Available: " + strings.Join(e.Available, ", ")
	}
	return msg
}

// NewLookupError creates a lookup error listing the valid candidates.
func NewLookupError(entityType, query string, available []string) *LookupError {
	return &LookupError{EntityType: entityType, Query: query, Available: available}
}
