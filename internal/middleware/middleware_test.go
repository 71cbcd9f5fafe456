package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	tu "github.com/DhavalSuthar-24/scoutnet/internal/testutil"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/token"
)

const secret = "middleware-secret"

func setup(t *testing.T) (*gin.Engine, user.UserRepository) {
	t.Helper()
	db := tu.NewDB(t, &user.User{})
	users := user.NewUserRepository(db)

	r := gin.New()
	r.Use(Recovery())
	auth := AuthMiddleware(secret, users)

	r.GET("/any", auth, func(c *gin.Context) {
		id, _ := common.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	r.GET("/scout-only", auth, RequireRoles(user.RoleScout), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/staff", auth, RequireRoles(user.RoleScout, user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	return r, users
}

var seq int

func seed(t *testing.T, users user.UserRepository, role user.Role, status user.Status) (*user.User, string) {
	t.Helper()
	seq++
	u := &user.User{
		Name:     tu.Faker().Name(),
		Email:    fmt.Sprintf("%s-%d@example.com", role, seq),
		Password: "x",
		Role:     role,
		Status:   status,
	}
	require.NoError(t, users.CreateUser(t.Context(), u))
	tok, err := token.GenerateJWT(u.ID, string(u.Role), secret, 5)
	require.NoError(t, err)
	return u, tok
}

func TestAuthMiddleware(t *testing.T) {
	r, users := setup(t)
	_, playerTok := seed(t, users, user.RolePlayer, user.StatusActive)
	_, suspendedTok := seed(t, users, user.RolePlayer, user.StatusSuspended)
	ghostTok, err := token.GenerateJWT(999, "player", secret, 5)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"no header", "", http.StatusUnauthorized, "No token"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "No token"},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, "Invalid token"},
		{"unknown user", "Bearer " + ghostTok, http.StatusUnauthorized, "User not found"},
		{"suspended user", "Bearer " + suspendedTok, http.StatusForbidden, "Account is not active"},
		{"ok", "Bearer " + playerTok, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/any", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.message != "" {
				env := tu.Decode(t, w, nil)
				assert.Equal(t, tt.message, env.Message)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	r, users := setup(t)
	_, playerTok := seed(t, users, user.RolePlayer, user.StatusActive)
	_, scoutTok := seed(t, users, user.RoleScout, user.StatusActive)
	_, adminTok := seed(t, users, user.RoleAdmin, user.StatusActive)

	assert.Equal(t, http.StatusForbidden, tu.Do(r, http.MethodGet, "/scout-only", nil, playerTok).Code)
	assert.Equal(t, http.StatusNoContent, tu.Do(r, http.MethodGet, "/scout-only", nil, scoutTok).Code)
	assert.Equal(t, http.StatusForbidden, tu.Do(r, http.MethodGet, "/scout-only", nil, adminTok).Code)
	assert.Equal(t, http.StatusNoContent, tu.Do(r, http.MethodGet, "/staff", nil, adminTok).Code)

	w := tu.Do(r, http.MethodGet, "/scout-only", nil, playerTok)
	env := tu.Decode(t, w, nil)
	assert.Equal(t, "AUTHORIZATION_ERROR", env.ErrorCode)
}

func TestRequireRoles_PanicsOnUnknownRole(t *testing.T) {
	assert.Panics(t, func() { RequireRoles(user.Role("coach")) })
}

func TestRecovery(t *testing.T) {
	r, _ := setup(t)
	w := tu.Do(r, http.MethodGet, "/panic", nil, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := tu.Decode(t, w, nil)
	assert.Equal(t, "INTERNAL_ERROR", env.ErrorCode)
	assert.NotEmpty(t, env.TrackingCode)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/login", RateLimit(NewIPRateLimiter(0, 2)), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, tu.Do(r, http.MethodGet, "/login", nil, "").Code)
	assert.Equal(t, http.StatusOK, tu.Do(r, http.MethodGet, "/login", nil, "").Code)
	w := tu.Do(r, http.MethodGet, "/login", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/players/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	tu.Do(r, http.MethodGet, "/players/1", nil, "")
	tu.Do(r, http.MethodGet, "/players/2", nil, "")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/players/:id", "200")))
}
