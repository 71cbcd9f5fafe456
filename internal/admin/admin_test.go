package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/audit"
	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/media"
	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/notification"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/scout"
	"github.com/DhavalSuthar-24/scoutnet/internal/shortlist"
	"github.com/DhavalSuthar-24/scoutnet/internal/testutil"
	"github.com/DhavalSuthar-24/scoutnet/internal/tryout"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
	"github.com/DhavalSuthar-24/scoutnet/pkg/token"
	hash "github.com/DhavalSuthar-24/scoutnet/utils"
)

const secret = "admin-secret"

var page = models.Page{Page: 1, Limit: 50}

type fixture struct {
	db      *gorm.DB
	svc     *AdminService
	users   user.UserRepository
	media   media.MediaRepository
	tryouts tryout.TryoutRepository
	audit   *audit.AuditService
	inbox   *notification.NotificationService
	store   *testutil.FakeStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash.SetCost(bcrypt.MinCost)
	db := testutil.NewDB(t,
		&user.User{}, &player.PlayerProfile{}, &player.PlayerStats{}, &scout.ScoutProfile{},
		&media.Video{}, &media.Like{}, &media.Comment{},
		&tryout.Tryout{}, &tryout.Invitation{}, &tryout.Location{},
		&shortlist.Shortlist{}, &notification.Notification{}, &audit.SystemLog{},
	)
	f := &fixture{
		db:      db,
		users:   user.NewUserRepository(db),
		media:   media.NewMediaRepository(db),
		tryouts: tryout.NewTryoutRepository(db),
		audit:   audit.NewAuditService(audit.NewAuditRepository(db)),
		inbox:   notification.NewNotificationService(notification.NewNotificationRepository(db)),
		store:   &testutil.FakeStore{},
	}
	limits := storage.Limits{MaxImageBytes: 1 << 20, MaxVideoBytes: 10 << 20}
	mediaSvc := media.NewMediaService(f.media, f.users, f.store, limits, f.inbox)
	tryoutSvc := tryout.NewTryoutService(f.tryouts, f.users, nil, f.inbox)
	f.svc = NewAdminService(NewAdminRepository(db), f.users, mediaSvc, tryoutSvc, f.audit, f.store)
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
	return common.Actor{ID: u.ID, Role: u.Role, Name: u.Name, IP: "10.1.1.1"}
}

func (f *fixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func (f *fixture) logs(t *testing.T, filter audit.Filter) []audit.SystemLog {
	t.Helper()
	logs, _, err := f.audit.List(context.Background(), filter, page)
	require.NoError(t, err)
	return logs
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.actor(t, user.RoleAdmin)
	p := f.actor(t, user.RolePlayer)
	s := f.actor(t, user.RoleScout)
	other := f.actor(t, user.RolePlayer)

	require.NoError(t, player.NewPlayerRepository(f.db).SaveProfile(ctx, &player.PlayerProfile{UserID: p.ID, ProfileImageID: "profiles/p.jpg", Rating: 1}))
	require.NoError(t, player.NewPlayerRepository(f.db).SaveStats(ctx, &player.PlayerStats{PlayerID: p.ID, MatchesPlayed: 3}))
	v := &media.Video{PlayerID: p.ID, URL: "https://cdn.test/media/videos/1", PublicID: "media/videos/1", Type: storage.MediaVideo, Status: media.StatusApproved}
	require.NoError(t, f.media.CreateVideo(ctx, v))
	require.NoError(t, f.media.CreateLike(ctx, &media.Like{UserID: s.ID, VideoID: v.ID}))
	require.NoError(t, f.media.CreateComment(ctx, &media.Comment{UserID: other.ID, VideoID: v.ID, Content: "nice"}))

	tr := &tryout.Tryout{ScoutID: s.ID, Name: "Open day", Location: "North Field", Date: time.Now().Add(48 * time.Hour)}
	require.NoError(t, f.tryouts.CreateTryout(ctx, tr))
	require.NoError(t, f.tryouts.CreateInvitation(ctx, &tryout.Invitation{TryoutID: tr.ID, PlayerID: p.ID, Status: tryout.InvitationPending, Source: tryout.SourceScout}))
	require.NoError(t, f.tryouts.CreateInvitation(ctx, &tryout.Invitation{TryoutID: tr.ID, PlayerID: other.ID, Status: tryout.InvitationPending, Source: tryout.SourceScout}))
	require.NoError(t, shortlist.NewShortlistRepository(f.db).Create(ctx, &shortlist.Shortlist{ScoutID: s.ID, PlayerID: p.ID}))
	f.inbox.Notify(ctx, p.ID, notification.KindShortlisted, s.Name, "City FC")

	require.NoError(t, f.svc.DeleteUser(ctx, admin, p.ID))

	u, err := f.users.GetUserByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Zero(t, f.count(t, &media.Video{}, "player_id = ?", p.ID))
	assert.Zero(t, f.count(t, &media.Like{}, "video_id = ?", v.ID))
	assert.Zero(t, f.count(t, &media.Comment{}, "video_id = ?", v.ID))
	assert.Zero(t, f.count(t, &player.PlayerProfile{}, "user_id = ?", p.ID))
	assert.Zero(t, f.count(t, &player.PlayerStats{}, "player_id = ?", p.ID))
	assert.Zero(t, f.count(t, &tryout.Invitation{}, "player_id = ?", p.ID))
	assert.Zero(t, f.count(t, &shortlist.Shortlist{}, "player_id = ?", p.ID))
	assert.Zero(t, f.count(t, &notification.Notification{}, "user_id = ?", p.ID))
	assert.ElementsMatch(t, []string{"media/videos/1", "profiles/p.jpg"}, f.store.DeletedIDs())

	// the scout's tryout and the other player's invitation are untouched
	assert.Equal(t, int64(1), f.count(t, &tryout.Invitation{}, "player_id = ?", other.ID))

	require.NoError(t, f.svc.DeleteUser(ctx, admin, s.ID))
	assert.Zero(t, f.count(t, &tryout.Tryout{}, "scout_id = ?", s.ID))
	assert.Zero(t, f.count(t, &tryout.Invitation{}, "tryout_id = ?", tr.ID))

	logs := f.logs(t, audit.Filter{Action: audit.ActionDelete, EntityType: audit.EntityUser})
	require.Len(t, logs, 2)
	assert.Equal(t, admin.ID, logs[0].ActorID)
	assert.Equal(t, "10.1.1.1", logs[0].IPAddress)

	assert.True(t, apperrors.IsKind(f.svc.DeleteUser(ctx, admin, admin.ID), apperrors.KindValidation))
	assert.True(t, apperrors.IsKind(f.svc.DeleteUser(ctx, admin, p.ID), apperrors.KindNotFound))
}

func TestDeleteUserSurvivesStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.actor(t, user.RoleAdmin)
	p := f.actor(t, user.RolePlayer)
	require.NoError(t, f.media.CreateVideo(ctx, &media.Video{PlayerID: p.ID, PublicID: "media/images/9", Type: storage.MediaImage, Status: media.StatusPending}))
	f.store.DeleteFunc = testutil.FailingDelete

	require.NoError(t, f.svc.DeleteUser(ctx, admin, p.ID))
	assert.Zero(t, f.count(t, &media.Video{}, "player_id = ?", p.ID))
}

func TestUpdateUserStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.actor(t, user.RoleAdmin)
	p := f.actor(t, user.RolePlayer)

	_, err := f.svc.UpdateUserStatus(ctx, admin, admin.ID, user.StatusSuspended)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	_, err = f.svc.UpdateUserStatus(ctx, admin, p.ID, user.Status("banned"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	_, err = f.svc.UpdateUserStatus(ctx, admin, 9999, user.StatusSuspended)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Empty(t, f.logs(t, audit.Filter{}))

	u, err := f.svc.UpdateUserStatus(ctx, admin, p.ID, user.StatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, user.StatusSuspended, u.Status)

	logs := f.logs(t, audit.Filter{})
	require.Len(t, logs, 1)
	assert.Equal(t, audit.ActionUpdate, logs[0].Action)
	assert.Equal(t, "status: active -> suspended", logs[0].Details)
}

type failingAuditRepo struct {
	audit.AuditRepository
}

func (failingAuditRepo) Create(context.Context, *audit.SystemLog) error {
	return errors.New("system_logs: disk full")
}

func TestAuditFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := audit.NewAuditService(failingAuditRepo{AuditRepository: audit.NewAuditRepository(f.db)})
	f.svc = NewAdminService(NewAdminRepository(f.db), f.users, nil, nil, trail, f.store)
	admin := f.actor(t, user.RoleAdmin)
	p := f.actor(t, user.RolePlayer)

	u, err := f.svc.UpdateUserStatus(ctx, admin, p.ID, user.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, user.StatusInactive, u.Status)

	r := gin.New()
	RegisterAdminRoutes(r.Group("/api"), NewAdminController(f.svc), mw.AuthMiddleware(secret, f.users))
	adminTok, err := token.GenerateJWT(admin.ID, string(admin.Role), secret, 5)
	require.NoError(t, err)
	w := testutil.Do(r, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/reset-password", p.ID), map[string]string{"new_password": "fresh-pass"}, adminTok)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := f.users.GetUserByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, user.StatusInactive, stored.Status)
	assert.True(t, hash.CheckPassword(stored.Password, "fresh-pass"))
	assert.Empty(t, f.logs(t, audit.Filter{}))
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.actor(t, user.RoleAdmin)
	p := f.actor(t, user.RolePlayer)

	res, err := f.svc.ResetPassword(ctx, admin, p.ID, "")
	require.NoError(t, err)
	require.Len(t, res.TemporaryPassword, 12)
	u, err := f.users.GetUserByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, hash.CheckPassword(u.Password, res.TemporaryPassword))

	res, err = f.svc.ResetPassword(ctx, admin, p.ID, "brand-new-pass")
	require.NoError(t, err)
	assert.Empty(t, res.TemporaryPassword)
	u, err = f.users.GetUserByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, hash.CheckPassword(u.Password, "brand-new-pass"))

	_, err = f.svc.ResetPassword(ctx, admin, p.ID, "abc")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	assert.Len(t, f.logs(t, audit.Filter{Action: audit.ActionResetPassword}), 2)
}

func TestModerateMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.actor(t, user.RoleAdmin)
	p := f.actor(t, user.RolePlayer)
	v := &media.Video{PlayerID: p.ID, PublicID: "media/videos/2", Description: "Free kicks", Type: storage.MediaVideo, Status: media.StatusPending}
	require.NoError(t, f.media.CreateVideo(ctx, v))

	got, err := f.svc.SetMediaStatus(ctx, admin, v.ID, media.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, media.StatusApproved, got.Status)

	inbox, err := f.inbox.List(ctx, p.ID, false, page)
	require.NoError(t, err)
	require.Len(t, inbox.Items, 1)
	assert.Equal(t, `Your video "Free kicks" was approved by a moderator`, inbox.Items[0].Message)

	videos, total, err := f.svc.ListMedia(ctx, media.ListFilter{Status: media.StatusApproved}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, videos, 1)

	require.NoError(t, f.svc.DeleteMedia(ctx, admin, v.ID))
	assert.True(t, apperrors.IsKind(f.svc.DeleteMedia(ctx, admin, v.ID), apperrors.KindNotFound))

	logs := f.logs(t, audit.Filter{EntityType: audit.EntityVideo})
	require.Len(t, logs, 2)
	assert.Equal(t, audit.ActionDelete, logs[0].Action)
	assert.Equal(t, "status: pending -> approved", logs[1].Details)
}

func TestLocations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.actor(t, user.RoleAdmin)
	s := f.actor(t, user.RoleScout)

	loc, err := f.svc.AddLocation(ctx, admin, "  Riverside Park ")
	require.NoError(t, err)
	assert.Equal(t, "Riverside Park", loc.Name)

	_, err = f.svc.AddLocation(ctx, admin, "riverside park")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	require.NoError(t, f.tryouts.CreateTryout(ctx, &tryout.Tryout{ScoutID: s.ID, Name: "Trial", Location: "Riverside Park", Date: time.Now().Add(time.Hour)}))
	err = f.svc.DeleteLocation(ctx, admin, loc.ID)
	require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Equal(t, "Cannot delete location: 1 tryout(s) still use it", err.Error())

	other, err := f.svc.AddLocation(ctx, admin, "Hill Stadium")
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteLocation(ctx, admin, other.ID))
	assert.True(t, apperrors.IsKind(f.svc.DeleteLocation(ctx, admin, other.ID), apperrors.KindNotFound))

	locs, err := f.svc.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locs, 1)
	assert.Len(t, f.logs(t, audit.Filter{EntityType: audit.EntityLocation}), 3)
}

func TestAdminEndpoints(t *testing.T) {
	f := newFixture(t)
	r := gin.New()
	RegisterAdminRoutes(r.Group("/api"), NewAdminController(f.svc), mw.AuthMiddleware(secret, f.users))

	admin := f.actor(t, user.RoleAdmin)
	scoutActor := f.actor(t, user.RoleScout)
	p := f.actor(t, user.RolePlayer)
	adminTok, err := token.GenerateJWT(admin.ID, string(admin.Role), secret, 5)
	require.NoError(t, err)
	scoutTok, err := token.GenerateJWT(scoutActor.ID, string(scoutActor.Role), secret, 5)
	require.NoError(t, err)

	w := testutil.Do(r, http.MethodGet, "/api/admin/dashboard", nil, scoutTok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Do(r, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/reset-password", p.ID), nil, adminTok)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reset ResetPasswordResult
	testutil.Decode(t, w, &reset)
	assert.Len(t, reset.TemporaryPassword, 12)

	w = testutil.Do(r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/status", admin.ID), StatusRequest{Status: "inactive"}, adminTok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(r, http.MethodGet, "/api/admin/users?role=player", nil, adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	var users []user.User
	testutil.Decode(t, w, &users)
	require.Len(t, users, 1)
	assert.Equal(t, p.ID, users[0].ID)

	w = testutil.Do(r, http.MethodGet, "/api/admin/users?role=coach", nil, adminTok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(r, http.MethodGet, "/api/admin/dashboard", nil, adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	var d Dashboard
	testutil.Decode(t, w, &d)
	assert.Equal(t, int64(1), d.UsersByRole["player"])
	assert.Equal(t, int64(3), d.UsersByStatus["active"])

	w = testutil.Do(r, http.MethodGet, "/api/admin/logs?action=purge", nil, adminTok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(r, http.MethodGet, "/api/admin/logs?action=reset_password", nil, adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	var logs []audit.SystemLog
	testutil.Decode(t, w, &logs)
	assert.Len(t, logs, 1)

	w = testutil.Do(r, http.MethodGet, "/api/admin/logs/export", nil, adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "audit-log-")
	assert.NotZero(t, w.Body.Len())
}
