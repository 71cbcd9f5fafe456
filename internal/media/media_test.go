package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/notification"
	"github.com/DhavalSuthar-24/scoutnet/internal/testutil"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
	"github.com/DhavalSuthar-24/scoutnet/pkg/token"
)

const secret = "media-secret"

var limits = storage.Limits{MaxImageBytes: 1 << 10, MaxVideoBytes: 1 << 20}

type sent struct {
	UserID uint
	Kind   notification.Kind
}

type recorder struct {
	mu   sync.Mutex
	sent []sent
}

func (r *recorder) Notify(_ context.Context, userID uint, kind notification.Kind, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{userID, kind})
}

func (r *recorder) kinds() []notification.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification.Kind, 0, len(r.sent))
	for _, s := range r.sent {
		out = append(out, s.Kind)
	}
	return out
}

type fixture struct {
	svc      *MediaService
	repo     MediaRepository
	users    user.UserRepository
	store    *testutil.FakeStore
	notifier *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t, &user.User{}, &Video{}, &Like{}, &Comment{})
	f := &fixture{
		repo:     NewMediaRepository(db),
		users:    user.NewUserRepository(db),
		store:    &testutil.FakeStore{},
		notifier: &recorder{},
	}
	f.svc = NewMediaService(f.repo, f.users, f.store, limits, f.notifier)
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

func clip(name, contentType string, size int64) *storage.File {
	return &storage.File{Filename: name, ContentType: contentType, Size: size, Body: strings.NewReader("data")}
}

func (f *fixture) upload(t *testing.T, owner common.Actor) *Video {
	t.Helper()
	v, err := f.svc.Upload(context.Background(), owner.ID, clip("goal.mp4", "video/mp4", 4), "Solo goal")
	require.NoError(t, err)
	return v
}

func TestUpload(t *testing.T) {
	f := newFixture(t)
	p := f.actor(t, user.RolePlayer)

	v := f.upload(t, p)
	assert.Equal(t, storage.MediaVideo, v.Type)
	assert.Equal(t, StatusPending, v.Status)
	assert.True(t, strings.HasPrefix(v.PublicID, "media/videos/"))

	img, err := f.svc.Upload(context.Background(), p.ID, clip("me.webp", "image/webp", 10), "")
	require.NoError(t, err)
	assert.Equal(t, storage.MediaImage, img.Type)
}

func TestUpload_RejectedBeforeStore(t *testing.T) {
	f := newFixture(t)
	p := f.actor(t, user.RolePlayer)
	ctx := context.Background()

	_, err := f.svc.Upload(ctx, p.ID, clip("notes.pdf", "application/pdf", 10), "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnsupportedMedia))

	_, err = f.svc.Upload(ctx, p.ID, clip("huge.png", "image/png", limits.MaxImageBytes+1), "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindPayloadTooLarge))

	_, err = f.svc.Upload(ctx, p.ID, nil, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	assert.Empty(t, f.store.Uploaded)
}

func TestUpload_StoreFailureLeavesNoRow(t *testing.T) {
	f := newFixture(t)
	f.store.UploadFunc = testutil.FailingUpload
	p := f.actor(t, user.RolePlayer)

	_, err := f.svc.Upload(context.Background(), p.ID, clip("goal.mp4", "video/mp4", 4), "")
	require.True(t, apperrors.IsKind(err, apperrors.KindStorage))

	videos, err := f.svc.ListOwn(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

type insertFailingRepo struct {
	MediaRepository
}

func (insertFailingRepo) CreateVideo(context.Context, *Video) error {
	return errors.New("insert failed")
}

func TestUpload_InsertFailureRemovesRemoteObject(t *testing.T) {
	f := newFixture(t)
	p := f.actor(t, user.RolePlayer)
	svc := NewMediaService(insertFailingRepo{f.repo}, f.users, f.store, limits, f.notifier)

	_, err := svc.Upload(context.Background(), p.ID, clip("goal.mp4", "video/mp4", 4), "")
	require.Error(t, err)
	require.Len(t, f.store.Uploaded, 1)
	assert.Equal(t, f.store.Uploaded, f.store.DeletedIDs())
}

func TestDelete_RemoteFailureStillRemovesRow(t *testing.T) {
	f := newFixture(t)
	f.store.DeleteFunc = testutil.FailingDelete
	ctx := context.Background()
	p := f.actor(t, user.RolePlayer)
	fan := f.actor(t, user.RolePlayer)
	v := f.upload(t, p)

	_, _, err := f.svc.Like(ctx, fan, v.ID)
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, fan, v.ID, "great finish")
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, p, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{v.PublicID}, f.store.DeletedIDs())

	got, err := f.repo.GetVideoByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	likes, err := f.repo.CountLikes(ctx, v.ID)
	require.NoError(t, err)
	assert.Zero(t, likes)
	comments, err := f.repo.ListComments(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDelete_Permissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.actor(t, user.RolePlayer)
	other := f.actor(t, user.RolePlayer)
	admin := f.actor(t, user.RoleAdmin)
	v := f.upload(t, owner)

	_, err := f.svc.Delete(ctx, other, v.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	_, err = f.svc.Delete(ctx, admin, v.ID)
	require.NoError(t, err)

	_, err = f.svc.Delete(ctx, admin, v.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestLike_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.actor(t, user.RolePlayer)
	scout := f.actor(t, user.RoleScout)
	v := f.upload(t, owner)

	first, created, err := f.svc.Like(ctx, scout, v.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, *first.AlreadyLiked)
	assert.Equal(t, int64(1), first.LikeCount)

	second, created, err := f.svc.Like(ctx, scout, v.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, *second.AlreadyLiked)
	assert.Equal(t, int64(1), second.LikeCount)

	assert.Equal(t, []notification.Kind{notification.KindVideoLiked}, f.notifier.kinds())

	// liking your own upload is silent
	_, _, err = f.svc.Like(ctx, owner, v.ID)
	require.NoError(t, err)
	assert.Len(t, f.notifier.kinds(), 1)

	res, err := f.svc.Unlike(ctx, scout, v.ID)
	require.NoError(t, err)
	assert.True(t, *res.WasLiked)
	assert.Equal(t, int64(1), res.LikeCount)

	res, err = f.svc.Unlike(ctx, scout, v.ID)
	require.NoError(t, err)
	assert.False(t, *res.WasLiked)

	_, _, err = f.svc.Like(ctx, scout, 9999)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.actor(t, user.RolePlayer)
	author := f.actor(t, user.RolePlayer)
	otherPlayer := f.actor(t, user.RolePlayer)
	scout := f.actor(t, user.RoleScout)
	admin := f.actor(t, user.RoleAdmin)
	v := f.upload(t, owner)

	_, err := f.svc.AddComment(ctx, scout, v.ID, "nice")
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	_, err = f.svc.AddComment(ctx, author, v.ID, strings.Repeat("é", MaxCommentLength+1))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.svc.AddComment(ctx, author, v.ID, "   ")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	cm, err := f.svc.AddComment(ctx, author, v.ID, strings.Repeat("é", MaxCommentLength))
	require.NoError(t, err)
	assert.Equal(t, author.Name, cm.AuthorName)
	assert.Equal(t, []notification.Kind{notification.KindVideoCommented}, f.notifier.kinds())

	views, err := f.svc.ListComments(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, author.Name, views[0].AuthorName)

	err = f.svc.DeleteComment(ctx, scout, cm.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	err = f.svc.DeleteComment(ctx, otherPlayer, cm.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	require.NoError(t, f.svc.DeleteComment(ctx, admin, cm.ID))
	assert.True(t, apperrors.IsKind(f.svc.DeleteComment(ctx, admin, cm.ID), apperrors.KindNotFound))

	mine, err := f.svc.AddComment(ctx, author, v.ID, "again")
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteComment(ctx, author, mine.ID))
}

func TestSetStatusAndFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.actor(t, user.RolePlayer)
	viewer := f.actor(t, user.RoleScout)
	approved := f.upload(t, owner)
	f.upload(t, owner)

	_, _, err := f.svc.SetStatus(ctx, approved.ID, Status("published"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	v, previous, err := f.svc.SetStatus(ctx, approved.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, previous)
	assert.Equal(t, StatusApproved, v.Status)
	assert.Equal(t, []notification.Kind{notification.KindMediaReviewed}, f.notifier.kinds())

	_, _, err = f.svc.Like(ctx, viewer, approved.ID)
	require.NoError(t, err)

	items, total, err := f.svc.Feed(ctx, viewer.ID, models.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, owner.Name, items[0].PlayerName)
	assert.Equal(t, int64(1), items[0].LikeCount)
	assert.True(t, items[0].LikedByMe)

	counts, err := f.svc.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["approved"])
	assert.Equal(t, int64(1), counts["pending"])
}

func newRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	f := newFixture(t)
	r := gin.New()
	RegisterMediaRoutes(r.Group("/api"), NewMediaController(f.svc), mw.AuthMiddleware(secret, f.users))
	return r, f
}

func tokenFor(t *testing.T, a common.Actor) string {
	t.Helper()
	tok, err := token.GenerateJWT(a.ID, string(a.Role), secret, 5)
	require.NoError(t, err)
	return tok
}

func TestLikeEndpoint(t *testing.T) {
	r, f := newRouter(t)
	owner := f.actor(t, user.RolePlayer)
	fan := f.actor(t, user.RolePlayer)
	v := f.upload(t, owner)

	body := map[string]uint{"video_id": v.ID}
	w := testutil.Do(r, http.MethodPost, "/api/player/videos/like", body, tokenFor(t, fan))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.Do(r, http.MethodPost, "/api/player/videos/like", body, tokenFor(t, fan))
	require.Equal(t, http.StatusOK, w.Code)
	var res LikeResult
	testutil.Decode(t, w, &res)
	assert.True(t, *res.AlreadyLiked)
	assert.Equal(t, int64(1), res.LikeCount)

	w = testutil.Do(r, http.MethodDelete, fmt.Sprintf("/api/player/videos/like/%d", v.ID), nil, tokenFor(t, fan))
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &res)
	assert.False(t, res.Liked)
	assert.Zero(t, res.LikeCount)
}

func multipartUpload(t *testing.T, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mpw := multipart.NewWriter(body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="clip.mp4"`)
	h.Set("Content-Type", contentType)
	part, err := mpw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{'x'}, size))
	require.NoError(t, err)
	require.NoError(t, mpw.WriteField("description", "Solo run"))
	require.NoError(t, mpw.Close())
	return body, mpw.FormDataContentType()
}

func TestUploadEndpoint_BodyLimit(t *testing.T) {
	r, f := newRouter(t)
	p := f.actor(t, user.RolePlayer)

	body, ct := multipartUpload(t, "video/mp4", 512)
	req := httptest.NewRequest(http.MethodPost, "/api/player/upload", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, p))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body, ct = multipartUpload(t, "video/mp4", int(limits.MaxVideoBytes)+multipartSlack+1)
	req = httptest.NewRequest(http.MethodPost, "/api/player/upload", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, p))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	env := testutil.Decode(t, w, nil)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", env.ErrorCode)
	assert.Len(t, f.store.Uploaded, 1)
}

func TestCommentEndpointRoleGate(t *testing.T) {
	r, f := newRouter(t)
	owner := f.actor(t, user.RolePlayer)
	scout := f.actor(t, user.RoleScout)
	v := f.upload(t, owner)

	w := testutil.Do(r, http.MethodPost, "/api/player/videos/comment",
		map[string]any{"video_id": v.ID, "content": "hi"}, tokenFor(t, scout))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Do(r, http.MethodPost, "/api/player/videos/comment",
		map[string]any{"video_id": v.ID}, tokenFor(t, owner))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(r, http.MethodGet, fmt.Sprintf("/api/player/videos/comment/%d", v.ID), nil, tokenFor(t, scout))
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(r, http.MethodGet, "/api/player/videos/comment/abc", nil, tokenFor(t, scout))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
