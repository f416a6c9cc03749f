package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewInternalError("failed to save", cause)

	assert.True(t, stderrors.Is(err, AppError{Code: CodeInternal}))
	assert.False(t, stderrors.Is(err, AppError{Code: CodeValidation}))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "INTERNAL_ERROR: failed to save: disk full", err.Error())

	withDetail := NewValidationError("bad").WithDetail("field", "amount")
	assert.Equal(t, "amount", withDetail.Details["field"])
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 404, ID: "404.2", Name: "resource_not_found", Detail: "Resource not found"}
	assert.Equal(t, "YNAB API Error [404] resource_not_found: Resource not found", err.Error())
	assert.False(t, err.Timeout())

	wrapped := fmt.Errorf("get accounts: %w", NewTimeoutError())
	var apiErr *APIError
	require.True(t, stderrors.As(wrapped, &apiErr))
	assert.Equal(t, 408, apiErr.StatusCode)
	assert.True(t, apiErr.Timeout())
}

func TestLookupError(t *testing.T) {
	err := NewLookupError("account", "savings", []string{"Checking", "Visa"})
	assert.Equal(t, "No account found matching 'savings'. Available: Checking, Visa", err.Error())

	bare := NewLookupError("category", "xyz", nil)
	assert.Equal(t, "No category found matching 'xyz'.", bare.Error())
}
