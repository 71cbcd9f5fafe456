package media

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
)

// MediaRepository defines data access for videos, likes and comments.
type MediaRepository interface {
	CreateVideo(ctx context.Context, v *Video) error
	GetVideoByID(ctx context.Context, id uint) (*Video, error)
	UpdateVideo(ctx context.Context, v *Video) error
	DeleteVideo(ctx context.Context, id uint) error
	ListByPlayer(ctx context.Context, playerID uint, status Status) ([]Video, error)
	ListVideos(ctx context.Context, filter ListFilter, page models.Page) ([]Video, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)

	CreateLike(ctx context.Context, l *Like) error
	DeleteLike(ctx context.Context, userID, videoID uint) (bool, error)
	LikeExists(ctx context.Context, userID, videoID uint) (bool, error)
	CountLikes(ctx context.Context, videoID uint) (int64, error)
	CountLikesByVideo(ctx context.Context, videoIDs []uint) (map[uint]int64, error)
	CountCommentsByVideo(ctx context.Context, videoIDs []uint) (map[uint]int64, error)
	LikedVideoIDs(ctx context.Context, userID uint, videoIDs []uint) (map[uint]bool, error)

	CreateComment(ctx context.Context, cm *Comment) error
	GetCommentByID(ctx context.Context, id uint) (*Comment, error)
	DeleteComment(ctx context.Context, id uint) error
	ListComments(ctx context.Context, videoID uint) ([]Comment, error)

	WithTransaction(ctx context.Context, txFunc func(MediaRepository) error) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) WithTransaction(ctx context.Context, txFunc func(MediaRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&mediaRepository{db: tx})
	})
}

func (r *mediaRepository) CreateVideo(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// GetVideoByID returns nil, nil when the video does not exist.
func (r *mediaRepository) GetVideoByID(ctx context.Context, id uint) (*Video, error) {
	var v Video
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *mediaRepository) UpdateVideo(ctx context.Context, v *Video) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// DeleteVideo removes the video with its likes and comments.
func (r *mediaRepository) DeleteVideo(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Video{}, id).Error
	})
}

func (r *mediaRepository) ListByPlayer(ctx context.Context, playerID uint, status Status) ([]Video, error) {
	q := r.db.WithContext(ctx).Where("player_id = ?", playerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var videos []Video
	if err := q.Order("created_at desc, id desc").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *mediaRepository) ListVideos(ctx context.Context, filter ListFilter, page models.Page) ([]Video, int64, error) {
	q := r.db.WithContext(ctx).Model(&Video{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.PlayerID != 0 {
		q = q.Where("player_id = ?", filter.PlayerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var videos []Video
	err := q.Order("created_at desc, id desc").Offset(page.Offset()).Limit(page.Limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

type countRow struct {
	Key   string
	Count int64
}

func (r *mediaRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&Video{}).
		Select("status AS key, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}

func (r *mediaRepository) CreateLike(ctx context.Context, l *Like) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *mediaRepository) DeleteLike(ctx context.Context, userID, videoID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *mediaRepository) LikeExists(ctx context.Context, userID, videoID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Like{}).Where("user_id = ? AND video_id = ?", userID, videoID).Count(&n).Error
	return n > 0, err
}

func (r *mediaRepository) CountLikes(ctx context.Context, videoID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Like{}).Where("video_id = ?", videoID).Count(&n).Error
	return n, err
}

type videoCount struct {
	VideoID uint
	Count   int64
}

func (r *mediaRepository) countGrouped(ctx context.Context, model any, videoIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return out, nil
	}
	var rows []videoCount
	err := r.db.WithContext(ctx).Model(model).
		Select("video_id, COUNT(*) AS count").
		Where("video_id IN ?", videoIDs).
		Group("video_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.VideoID] = row.Count
	}
	return out, nil
}

func (r *mediaRepository) CountLikesByVideo(ctx context.Context, videoIDs []uint) (map[uint]int64, error) {
	return r.countGrouped(ctx, &Like{}, videoIDs)
}

func (r *mediaRepository) CountCommentsByVideo(ctx context.Context, videoIDs []uint) (map[uint]int64, error) {
	return r.countGrouped(ctx, &Comment{}, videoIDs)
}

func (r *mediaRepository) LikedVideoIDs(ctx context.Context, userID uint, videoIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(videoIDs))
	if len(videoIDs) == 0 || userID == 0 {
		return out, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&Like{}).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *mediaRepository) CreateComment(ctx context.Context, cm *Comment) error {
	return r.db.WithContext(ctx).Create(cm).Error
}

// GetCommentByID returns nil, nil when the comment does not exist.
func (r *mediaRepository) GetCommentByID(ctx context.Context, id uint) (*Comment, error) {
	var cm Comment
	if err := r.db.WithContext(ctx).First(&cm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cm, nil
}

func (r *mediaRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Comment{}, id).Error
}

func (r *mediaRepository) ListComments(ctx context.Context, videoID uint) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).Where("video_id = ?", videoID).Order("created_at asc, id asc").Find(&comments).Error
	return comments, err
}
