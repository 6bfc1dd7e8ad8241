package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{ErrValidation("bad"), "VALIDATION_ERROR", http.StatusBadRequest},
		{ErrUnauthorized("no"), "UNAUTHORIZED", http.StatusUnauthorized},
		{ErrForbidden("no"), "FORBIDDEN", http.StatusForbidden},
		{ErrNotFound("gone"), "NOT_FOUND", http.StatusNotFound},
		{ErrInvalidState("late"), "INVALID_STATE", http.StatusConflict},
		{ErrInternal("boom"), "INTERNAL", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.Status)
		assert.NotEmpty(t, tc.err.Error())
	}
}

func TestAsAppErrorUnwraps(t *testing.T) {
	base := NewAppError(http.StatusConflict, "REQUEST_EXISTS", "duplicate")

	appErr, ok := AsAppError(base)
	require.True(t, ok)
	assert.Equal(t, "REQUEST_EXISTS", appErr.Code)

	wrapped := fmt.Errorf("send failed: %w", base)
	appErr, ok = AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "REQUEST_EXISTS", appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
