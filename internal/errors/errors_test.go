package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := Validation("description cannot be empty")

	assert.True(t, stderrors.Is(err, ErrValidation))
	assert.False(t, stderrors.Is(err, ErrStore))
	assert.True(t, IsValidation(fmt.Errorf("add task: %w", err)))
}

func TestStore_Unwraps(t *testing.T) {
	cause := stderrors.New("disk I/O error")
	err := Store("failed to insert task", cause)

	assert.True(t, IsStore(err))
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "failed to insert task: disk I/O error", err.Error())
}

func TestCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, Code(NotFound("")))
	assert.Equal(t, ErrCodeForbidden, Code(fmt.Errorf("wrapped: %w", Forbidden(""))))
	assert.Equal(t, ErrCodeInternalError, Code(stderrors.New("plain")))
}
