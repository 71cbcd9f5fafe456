package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/common"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/notification"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
)

type MediaService struct {
	repo     MediaRepository
	users    user.UserRepository
	store    storage.MediaStore
	limits   storage.Limits
	notifier notification.Notifier
}

func NewMediaService(repo MediaRepository, users user.UserRepository, store storage.MediaStore, limits storage.Limits, notifier notification.Notifier) *MediaService {
	return &MediaService{repo: repo, users: users, store: store, limits: limits, notifier: notifier}
}

func (s *MediaService) getVideo(ctx context.Context, id uint) (*Video, error) {
	v, err := s.repo.GetVideoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperrors.NotFound("Video")
	}
	return v, nil
}

// MaxUploadBytes is the largest file any upload may carry.
func (s *MediaService) MaxUploadBytes() int64 {
	return max(s.limits.MaxImageBytes, s.limits.MaxVideoBytes)
}

// Upload validates the file, sends it to the store and records it as pending.
// Nothing is written locally when the store rejects the upload.
func (s *MediaService) Upload(ctx context.Context, playerID uint, file *storage.File, description string) (*Video, error) {
	if file == nil {
		return nil, apperrors.Validation("No file uploaded")
	}
	kind, err := storage.Validate(file.ContentType, file.Size, s.limits)
	if err != nil {
		return nil, err
	}

	folder := fmt.Sprintf("media/%ss", kind)
	obj, err := s.store.Upload(ctx, folder, file.Filename, file.Body, file.Size, file.ContentType)
	if err != nil {
		return nil, apperrors.Storage("Failed to upload media", err)
	}

	v := &Video{
		PlayerID:    playerID,
		URL:         obj.URL,
		PublicID:    obj.PublicID,
		Description: strings.TrimSpace(description),
		Type:        kind,
		Status:      StatusPending,
		MimeType:    file.ContentType,
		SizeBytes:   file.Size,
	}
	if err := s.repo.CreateVideo(ctx, v); err != nil {
		logger.BestEffort(ctx, "storage:delete-orphan", func() error {
			return s.store.Delete(ctx, obj.PublicID)
		})
		return nil, err
	}
	logger.Info(ctx).Uint("video_id", v.ID).Str("type", string(kind)).Msg("media uploaded")
	return v, nil
}

// ListOwn returns every upload of the player, newest first.
func (s *MediaService) ListOwn(ctx context.Context, playerID uint) ([]Video, error) {
	videos, err := s.repo.ListByPlayer(ctx, playerID, "")
	if videos == nil {
		videos = []Video{}
	}
	return videos, err
}

// ApprovedByPlayer is what scouts see on a player's page.
func (s *MediaService) ApprovedByPlayer(ctx context.Context, playerID uint) ([]Video, error) {
	videos, err := s.repo.ListByPlayer(ctx, playerID, StatusApproved)
	if videos == nil {
		videos = []Video{}
	}
	return videos, err
}

// Feed lists approved uploads with engagement counts as seen by viewerID.
func (s *MediaService) Feed(ctx context.Context, viewerID uint, page models.Page) ([]FeedItem, int64, error) {
	videos, total, err := s.repo.ListVideos(ctx, ListFilter{Status: StatusApproved}, page)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(videos))
	playerIDs := make([]uint, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
		playerIDs = append(playerIDs, v.PlayerID)
	}
	likes, err := s.repo.CountLikesByVideo(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	comments, err := s.repo.CountCommentsByVideo(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	liked, err := s.repo.LikedVideoIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}
	players, err := s.users.GetUsersByIDs(ctx, playerIDs)
	if err != nil {
		return nil, 0, err
	}

	items := make([]FeedItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, FeedItem{
			Video:        v,
			PlayerName:   players[v.PlayerID].Name,
			LikeCount:    likes[v.ID],
			CommentCount: comments[v.ID],
			LikedByMe:    liked[v.ID],
		})
	}
	return items, total, nil
}

// UpdateDescription lets the owning player edit the caption.
func (s *MediaService) UpdateDescription(ctx context.Context, playerID, videoID uint, description string) (*Video, error) {
	v, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v.PlayerID != playerID {
		return nil, apperrors.Authorization("You can only edit your own media")
	}
	v.Description = strings.TrimSpace(description)
	if err := s.repo.UpdateVideo(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes an upload for its owner or an admin. A failed remote delete is
// logged and the local rows are removed regardless.
func (s *MediaService) Delete(ctx context.Context, actor common.Actor, videoID uint) (*Video, error) {
	v, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v.PlayerID != actor.ID && !actor.IsAdmin() {
		return nil, apperrors.Authorization("You can only delete your own media")
	}

	if v.PublicID != "" {
		logger.BestEffort(ctx, "storage:delete", func() error {
			return s.store.Delete(ctx, v.PublicID)
		})
	}
	if err := s.repo.DeleteVideo(ctx, v.ID); err != nil {
		return nil, err
	}
	return v, nil
}

// List is the admin media listing.
func (s *MediaService) List(ctx context.Context, filter ListFilter, page models.Page) ([]Video, int64, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, apperrors.Validation("Invalid status filter %q", filter.Status)
	}
	if filter.Type != "" && filter.Type != storage.MediaImage && filter.Type != storage.MediaVideo {
		return nil, 0, apperrors.Validation("Invalid type filter %q", filter.Type)
	}
	videos, total, err := s.repo.ListVideos(ctx, filter, page)
	if videos == nil {
		videos = []Video{}
	}
	return videos, total, err
}

// SetStatus records a moderation decision and tells the owner about it.
func (s *MediaService) SetStatus(ctx context.Context, videoID uint, status Status) (*Video, Status, error) {
	if !status.IsValid() {
		return nil, "", apperrors.Validation("status must be one of pending, approved, rejected")
	}
	v, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, "", err
	}
	previous := v.Status
	v.Status = status
	if err := s.repo.UpdateVideo(ctx, v); err != nil {
		return nil, "", err
	}
	if previous != status {
		s.notifier.Notify(ctx, v.PlayerID, notification.KindMediaReviewed, v.Type, v.Title(), status)
	}
	return v, previous, nil
}

func (s *MediaService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountByStatus(ctx)
}

// Like is idempotent. created reports whether a new like row was written.
func (s *MediaService) Like(ctx context.Context, actor common.Actor, videoID uint) (*LikeResult, bool, error) {
	v, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, false, err
	}

	created := false
	err = s.repo.WithTransaction(ctx, func(tx MediaRepository) error {
		exists, err := tx.LikeExists(ctx, actor.ID, videoID)
		if err != nil || exists {
			return err
		}
		if err := tx.CreateLike(ctx, &Like{UserID: actor.ID, VideoID: videoID}); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, false, err
	}

	count, err := s.repo.CountLikes(ctx, videoID)
	if err != nil {
		return nil, false, err
	}
	if created && v.PlayerID != actor.ID {
		s.notifier.Notify(ctx, v.PlayerID, notification.KindVideoLiked, actor.Name, v.Type, v.Title())
	}
	already := !created
	return &LikeResult{Liked: true, AlreadyLiked: &already, LikeCount: count}, created, nil
}

// Unlike is idempotent and reports whether a like was removed.
func (s *MediaService) Unlike(ctx context.Context, actor common.Actor, videoID uint) (*LikeResult, error) {
	if _, err := s.getVideo(ctx, videoID); err != nil {
		return nil, err
	}
	removed, err := s.repo.DeleteLike(ctx, actor.ID, videoID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountLikes(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: false, WasLiked: &removed, LikeCount: count}, nil
}

// AddComment is for players only.
func (s *MediaService) AddComment(ctx context.Context, actor common.Actor, videoID uint, content string) (*CommentView, error) {
	if actor.Role != user.RolePlayer {
		return nil, apperrors.Authorization("Only players can comment")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("content is required")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, apperrors.Validation("content must be at most %d characters", MaxCommentLength)
	}
	v, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	cm := &Comment{VideoID: videoID, UserID: actor.ID, Content: content}
	if err := s.repo.CreateComment(ctx, cm); err != nil {
		return nil, err
	}
	if v.PlayerID != actor.ID {
		s.notifier.Notify(ctx, v.PlayerID, notification.KindVideoCommented, actor.Name, v.Type, v.Title(), content)
	}
	return &CommentView{Comment: *cm, AuthorName: actor.Name, AuthorRole: string(actor.Role)}, nil
}

func (s *MediaService) ListComments(ctx context.Context, videoID uint) ([]CommentView, error) {
	if _, err := s.getVideo(ctx, videoID); err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(ctx, videoID)
	if err != nil {
		return nil, err
	}
	authorIDs := make([]uint, 0, len(comments))
	for _, cm := range comments {
		authorIDs = append(authorIDs, cm.UserID)
	}
	authors, err := s.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, 0, len(comments))
	for _, cm := range comments {
		a := authors[cm.UserID]
		views = append(views, CommentView{Comment: cm, AuthorName: a.Name, AuthorRole: string(a.Role)})
	}
	return views, nil
}

// DeleteComment is allowed for the author or an admin.
func (s *MediaService) DeleteComment(ctx context.Context, actor common.Actor, commentID uint) error {
	cm, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if cm == nil {
		return apperrors.NotFound("Comment")
	}
	if cm.UserID != actor.ID && !actor.IsAdmin() {
		return apperrors.Authorization("You can only delete your own comments")
	}
	return s.repo.DeleteComment(ctx, commentID)
}
