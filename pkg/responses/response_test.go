package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
)

func render(t *testing.T, fn func(c *gin.Context)) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	fn(c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleError_Classified(t *testing.T) {
	code, body := render(t, func(c *gin.Context) {
		HandleError(c, apperrors.Conflict("Email already registered"))
	})

	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", body.ErrorCode)
	assert.Equal(t, "Email already registered", body.Message)
	assert.Empty(t, body.TrackingCode)
}

func TestHandleError_UnknownGetsTrackingCode(t *testing.T) {
	SetProduction(true)
	t.Cleanup(func() { SetProduction(false) })

	code, body := render(t, func(c *gin.Context) {
		HandleError(c, errors.New("connection reset"))
	})

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
	assert.Equal(t, "Something went wrong", body.Message)
	assert.NotEmpty(t, body.TrackingCode)
	assert.Empty(t, body.Stack)
}

func TestHandleError_StackOutsideProduction(t *testing.T) {
	SetProduction(false)

	_, body := render(t, func(c *gin.Context) {
		HandleError(c, apperrors.Storage("Failed to upload media", errors.New("bucket missing")))
	})

	assert.Equal(t, "STORAGE_ERROR", body.ErrorCode)
	assert.Equal(t, "bucket missing", body.Stack)
}

func TestSendError_DerivesCode(t *testing.T) {
	code, body := render(t, func(c *gin.Context) {
		Unauthorized(c, "No token")
	})

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTHENTICATION_ERROR", body.ErrorCode)
	assert.Equal(t, "No token", body.Message)
	assert.Equal(t, "error", body.Status)
}
