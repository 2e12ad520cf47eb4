package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprint/internal/errors"
)

func TestAppError_ErrorString(t *testing.T) {
	err := errors.NewNotFoundError("session", "abc")
	assert.Equal(t, "NOT_FOUND: session not found: abc", err.Error())
	assert.Equal(t, 404, err.Status)

	wrapped := errors.NewInternalError(fmt.Errorf("disk full"))
	assert.Contains(t, wrapped.Error(), "disk full")
	assert.Equal(t, "disk full", stderrors.Unwrap(wrapped).Error())
}

func TestHasCode_FindsWrappedAppError(t *testing.T) {
	err := fmt.Errorf("evaluate: %w", errors.NewDivisionByZeroError())

	assert.True(t, errors.HasCode(err, errors.ErrCodeDivisionByZero))
	assert.False(t, errors.HasCode(err, errors.ErrCodeParse))
	assert.False(t, errors.HasCode(fmt.Errorf("plain"), errors.ErrCodeParse))

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 422, appErr.Status)
}

func TestExpressionErrorMessages(t *testing.T) {
	assert.Equal(t, "Unsupported character: ^", errors.NewParseError('^').Message)
	assert.Equal(t, "The expression format is invalid.", errors.NewInvalidFormatError("").Message)
	assert.Equal(t, "Use each number exactly once: 8, 8, 3, 3.", errors.NewOperandMismatchError([]int{8, 8, 3, 3}).Message)
	assert.Contains(t, errors.NewUnsolvablePuzzleError(500).Message, "500 attempts")
}
