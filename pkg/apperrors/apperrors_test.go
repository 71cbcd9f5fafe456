package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusAndCode(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
		code   string
	}{
		{"validation", Validation("bad %s", "input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"authentication", Authentication("Invalid token"), http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
		{"authorization", Authorization("nope"), http.StatusForbidden, "AUTHORIZATION_ERROR"},
		{"not found", NotFound("Video"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", Conflict("dup"), http.StatusConflict, "CONFLICT"},
		{"unsupported media", UnsupportedMedia("text/plain"), http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"too large", PayloadTooLarge(10 << 20), http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"storage", Storage("upload failed", errors.New("timeout")), http.StatusInternalServerError, "STORAGE_ERROR"},
		{"rate limited", RateLimited(), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", &Error{Kind: KindInternal, Message: "x"}, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
			assert.Equal(t, tt.code, tt.err.Code())
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Video not found", NotFound("Video").Error())
}

func TestAsThroughWrapping(t *testing.T) {
	cause := errors.New("s3 unreachable")
	wrapped := fmt.Errorf("upload: %w", Storage("Failed to upload media", cause))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindStorage, appErr.Kind)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, IsKind(wrapped, KindStorage))
	assert.False(t, IsKind(wrapped, KindValidation))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, KindInternal, "ignored"))
}
