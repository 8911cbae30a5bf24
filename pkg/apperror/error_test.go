package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf_WrappedAppError(t *testing.T) {
	err := fmt.Errorf("move failed: %w", NewConflictError("cycle"))

	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestCodeOf_PlainError_IsInternal(t *testing.T) {
	assert.Equal(t, CodeInternalError, CodeOf(errors.New("boom")))
	assert.False(t, IsValidation(nil))
}

func TestNewInternalError_HidesCause(t *testing.T) {
	cause := errors.New("pq: deadlock")
	err := NewInternalError(cause)

	assert.Equal(t, "internal server error", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.ErrorIs(t, err, cause)
}

func TestAppError_WithField(t *testing.T) {
	err := NewValidationError("invalid department", nil).
		WithField("identifier", "too short").
		WithField("name", "required")

	assert.True(t, IsValidation(err))
	assert.Len(t, err.Details, 2)
	assert.Equal(t, "identifier", err.Details[0].Field)
}
