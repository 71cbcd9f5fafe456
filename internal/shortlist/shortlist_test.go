package shortlist

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/notification"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/testutil"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/token"
)

const secret = "shortlist-secret"

type orgs map[uint]string

func (o orgs) Organization(_ context.Context, id uint) (string, error) { return o[id], nil }

type fixture struct {
	svc     *ShortlistService
	users   user.UserRepository
	players player.PlayerRepository
	inbox   *notification.NotificationService
	orgs    orgs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t, &user.User{}, &player.PlayerProfile{}, &Shortlist{}, &notification.Notification{})
	f := &fixture{
		users:   user.NewUserRepository(db),
		players: player.NewPlayerRepository(db),
		inbox:   notification.NewNotificationService(notification.NewNotificationRepository(db)),
		orgs:    orgs{},
	}
	f.svc = NewShortlistService(NewShortlistRepository(db), f.users, f.players, f.orgs, f.inbox)
	return f
}

var seq int

func (f *fixture) actor(t *testing.T, role user.Role) common.Actor {
	t.Helper()
	seq++
	u := &user.User{
		Name:     fmt.Sprintf("%s %d", testutil.Faker().FirstName(), seq),
		Email:    fmt.Sprintf("%s-%d@example.com", role, seq),
		Password: "x",
		Role:     role,
		Status:   user.StatusActive,
	}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return common.Actor{ID: u.ID, Role: u.Role, Name: u.Name}
}

func TestAddNotifiesWithOrganization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	scout := f.actor(t, user.RoleScout)
	p := f.actor(t, user.RolePlayer)
	f.orgs[scout.ID] = "City FC"

	_, err := f.svc.Add(ctx, scout, p.ID, "quick feet")
	require.NoError(t, err)

	inbox, err := f.inbox.List(ctx, p.ID, false, models.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, inbox.Items, 1)
	assert.Equal(t, scout.Name+" from City FC added you to their shortlist", inbox.Items[0].Message)

	_, err = f.svc.Add(ctx, scout, p.ID, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = f.svc.Add(ctx, scout, scout.ID, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListAndRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	scout := f.actor(t, user.RoleScout)
	withProfile := f.actor(t, user.RolePlayer)
	bare := f.actor(t, user.RolePlayer)
	require.NoError(t, f.players.SaveProfile(ctx, &player.PlayerProfile{UserID: withProfile.ID, Position: "Keeper"}))

	for _, p := range []common.Actor{withProfile, bare} {
		_, err := f.svc.Add(ctx, scout, p.ID, "")
		require.NoError(t, err)
	}

	entries, err := f.svc.List(ctx, scout.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	byPlayer := map[uint]Entry{}
	for _, e := range entries {
		byPlayer[e.PlayerID] = e
	}
	require.NotNil(t, byPlayer[withProfile.ID].Profile)
	assert.Equal(t, "Keeper", byPlayer[withProfile.ID].Profile.Position)
	assert.Nil(t, byPlayer[bare.ID].Profile)
	assert.Equal(t, bare.Name, byPlayer[bare.ID].PlayerName)

	require.NoError(t, f.svc.Remove(ctx, scout.ID, bare.ID))
	assert.True(t, apperrors.IsKind(f.svc.Remove(ctx, scout.ID, bare.ID), apperrors.KindNotFound))
}

func TestShortlistEndpoints(t *testing.T) {
	f := newFixture(t)
	r := gin.New()
	RegisterShortlistRoutes(r.Group("/api"), NewShortlistController(f.svc), mw.AuthMiddleware(secret, f.users))

	scout := f.actor(t, user.RoleScout)
	p := f.actor(t, user.RolePlayer)
	tok, err := token.GenerateJWT(scout.ID, string(scout.Role), secret, 5)
	require.NoError(t, err)

	w := testutil.Do(r, http.MethodPost, "/api/scout/shortlist", map[string]uint{"player_id": p.ID}, tok)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.Do(r, http.MethodPost, "/api/scout/shortlist", map[string]uint{"player_id": p.ID}, tok)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", testutil.Decode(t, w, nil).ErrorCode)

	w = testutil.Do(r, http.MethodDelete, fmt.Sprintf("/api/scout/shortlist/%d", p.ID), nil, tok)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(r, http.MethodDelete, fmt.Sprintf("/api/scout/shortlist/%d", p.ID), nil, tok)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
