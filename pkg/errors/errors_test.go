package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{NotFound("Chat", nil), "NOT_FOUND", http.StatusNotFound},
		{BadRequest("bad", nil), "BAD_REQUEST", http.StatusBadRequest},
		{Unauthorized("no", nil), "UNAUTHORIZED", http.StatusUnauthorized},
		{Forbidden("no", nil), "FORBIDDEN", http.StatusForbidden},
		{InvalidState("done", nil), "INVALID_STATE", http.StatusConflict},
		{Internal("boom", nil), "INTERNAL_ERROR", http.StatusInternalServerError},
		{Conflict("taken"), "CONFLICT", http.StatusConflict},
		{TooManyRequests("slow down"), "TOO_MANY_REQUESTS", http.StatusTooManyRequests},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.status, tc.err.Status)
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Chat not found", NotFound("Chat", nil).Message)
}

func TestIs(t *testing.T) {
	err := NotFound("Chat", nil)
	assert.True(t, Is(err, "NOT_FOUND"))
	assert.False(t, Is(err, "FORBIDDEN"))
	assert.False(t, Is(errors.New("plain"), "NOT_FOUND"))
	assert.False(t, Is(nil, "NOT_FOUND"))
}

func TestIsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading chat: %w", NotFound("Chat", nil))
	assert.True(t, Is(wrapped, "NOT_FOUND"))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("row missing")
	err := NotFound("Chat", cause)
	assert.ErrorIs(t, err, cause)
}
