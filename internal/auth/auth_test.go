package auth

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/scout"
	"github.com/DhavalSuthar-24/scoutnet/internal/testutil"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/token"
	hash "github.com/DhavalSuthar-24/scoutnet/utils"
)

var tokens = TokenConfig{
	AccessSecret:        "access-secret",
	AccessExpiryMinutes: 15,
	RefreshSecret:       "refresh-secret",
	RefreshExpiryDays:   7,
}

type fixture struct {
	db    *gorm.DB
	svc   *AuthService
	users user.UserRepository
	r     *gin.Engine
}

func newFixture(t *testing.T, limit gin.HandlerFunc) *fixture {
	t.Helper()
	hash.SetCost(bcrypt.MinCost)
	db := testutil.NewDB(t, &user.User{}, &player.PlayerProfile{}, &scout.ScoutProfile{})
	users := user.NewUserRepository(db)
	svc := NewAuthService(NewAuthRepository(db), users, tokens)

	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	r := gin.New()
	RegisterAuthRoutes(r.Group("/api"), NewAuthController(svc), mw.AuthMiddleware(tokens.AccessSecret, users), limit)
	return &fixture{db: db, svc: svc, users: users, r: r}
}

var seq int

func registration(role string) RegisterRequest {
	seq++
	return RegisterRequest{
		Name:            testutil.Faker().Name(),
		Email:           fmt.Sprintf("%s-%d@example.com", role, seq),
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Role:            role,
	}
}

func (f *fixture) count(t *testing.T, email string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&user.User{}).Where("email = ?", email).Count(&n).Error)
	return n
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t, nil)
	req := registration("player")

	w := testutil.Do(f.r, http.MethodPost, "/api/auth/register", req, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req.Role = "scout"
	w = testutil.Do(f.r, http.MethodPost, "/api/auth/register", req, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", testutil.Decode(t, w, nil).ErrorCode)
	assert.Equal(t, int64(1), f.count(t, req.Email))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	mismatch := registration("player")
	mismatch.ConfirmPassword = "secret124"
	_, err := f.svc.Register(ctx, mismatch)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	admin := registration("admin")
	_, err = f.svc.Register(ctx, admin)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Zero(t, f.count(t, admin.Email))

	short := registration("player")
	short.Password, short.ConfirmPassword = "abc", "abc"
	w := testutil.Do(f.r, http.MethodPost, "/api/auth/register", short, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	future := registration("player")
	future.DOB = "2999-01-01"
	_, err = f.svc.Register(ctx, future)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Zero(t, f.count(t, future.Email))
}

func TestRegister_SeedsProfiles(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	p := registration("player")
	p.DOB = "2004-05-17"
	resp, err := f.svc.Register(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, user.RolePlayer, resp.User.Role)

	me, err := f.svc.Me(ctx, resp.User)
	require.NoError(t, err)
	profile, ok := me.Profile.(*player.PlayerProfile)
	require.True(t, ok)
	require.NotNil(t, profile.DateOfBirth)
	assert.Equal(t, "2004-05-17", profile.DateOfBirth.Format("2006-01-02"))
	assert.Equal(t, player.MinRating, profile.Rating)

	s := registration("SCOUT")
	s.Organization = " City FC "
	resp, err = f.svc.Register(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, user.RoleScout, resp.User.Role)

	me, err = f.svc.Me(ctx, resp.User)
	require.NoError(t, err)
	sp, ok := me.Profile.(*scout.ScoutProfile)
	require.True(t, ok)
	assert.Equal(t, "City FC", sp.Organization)
}

func TestLogin(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	req := registration("scout")
	reg, err := f.svc.Register(ctx, req)
	require.NoError(t, err)

	resp, err := f.svc.Login(ctx, "  "+req.Email+" ", req.Password)
	require.NoError(t, err)
	claims, err := token.ValidateJWT(resp.Token, tokens.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "scout", claims.Role)

	_, err = f.svc.Login(ctx, req.Email, "wrong-pass")
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	_, err = f.svc.Login(ctx, "nobody@example.com", req.Password)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))

	require.NoError(t, f.users.UpdateStatus(ctx, reg.User.ID, user.StatusSuspended))
	w := testutil.Do(f.r, http.MethodPost, "/api/auth/login", LoginRequest{Email: req.Email, Password: req.Password}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = testutil.Do(f.r, http.MethodPost, "/api/auth/login", LoginRequest{Email: req.Email, Password: "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	reg, err := f.svc.Register(ctx, registration("player"))
	require.NoError(t, err)

	out, err := f.svc.Refresh(ctx, reg.RefreshToken)
	require.NoError(t, err)
	claims, err := token.ValidateJWT(out.Token, tokens.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	_, err = f.svc.Refresh(ctx, reg.Token)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication), "access tokens are not refresh tokens")

	_, err = token.ValidateJWT(reg.RefreshToken, tokens.AccessSecret)
	assert.Error(t, err)

	require.NoError(t, f.users.UpdateStatus(ctx, reg.User.ID, user.StatusInactive))
	_, err = f.svc.Refresh(ctx, reg.RefreshToken)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
}

func TestMeEndpoint(t *testing.T) {
	f := newFixture(t, nil)
	reg, err := f.svc.Register(context.Background(), registration("player"))
	require.NoError(t, err)

	w := testutil.Do(f.r, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(f.r, http.MethodGet, "/api/auth/me", nil, reg.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me struct {
		User    user.User            `json:"user"`
		Profile player.PlayerProfile `json:"profile"`
	}
	testutil.Decode(t, w, &me)
	assert.Equal(t, reg.User.Email, me.User.Email)
	assert.Equal(t, reg.User.ID, me.Profile.UserID)
	assert.NotContains(t, w.Body.String(), "secret123")
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	f := newFixture(t, mw.RateLimit(mw.PerMinute(1, 1)))
	body := LoginRequest{Email: "nobody@example.com", Password: "whatever"}

	w := testutil.Do(f.r, http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutil.Do(f.r, http.MethodPost, "/api/auth/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", testutil.Decode(t, w, nil).ErrorCode)
}
