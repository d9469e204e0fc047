package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeNoDietPolicy, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeExecutionConflict, http.StatusConflict},
		{CodeServiceUnavailable, http.StatusServiceUnavailable},
		{CodeDatabaseError, http.StatusInternalServerError},
		{CodeCompositionFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := NewAppError(tt.code, "boom", "")
			assert.Equal(t, tt.expected, err.StatusCode())
		})
	}
}

func TestWrapKeepsAppErrors(t *testing.T) {
	original := NewBadRequestError("invalid meal slot")
	wrapped := Wrap(original, "request failed")
	assert.Same(t, original, wrapped)
}

func TestWrapPlainErrors(t *testing.T) {
	cause := stderrors.New("connection refused")
	wrapped := Wrap(cause, "talk to database")

	require.NotNil(t, wrapped)
	assert.Equal(t, CodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestDatabaseErrorCarriesCause(t *testing.T) {
	cause := stderrors.New("unique constraint violated")
	err := NewDatabaseError("persist prep execution record", cause)

	assert.Equal(t, CodeDatabaseError, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "persist prep execution record")
}

func TestIsAndGetCode(t *testing.T) {
	err := NewExecutionConflictError("dinner")
	assert.True(t, Is(err, CodeExecutionConflict))
	assert.False(t, Is(err, CodeBadRequest))
	assert.Equal(t, CodeExecutionConflict, GetCode(err))
	assert.Equal(t, CodeInternal, GetCode(stderrors.New("plain")))
}

func TestToErrorResponse(t *testing.T) {
	err := NewExecutionConflictError("lunch")
	resp := ToErrorResponse(err, "req-123")

	assert.Equal(t, CodeExecutionConflict, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Equal(t, "lunch", resp.Error.Metadata["slot"])
	assert.NotEmpty(t, resp.Error.Timestamp)
}
