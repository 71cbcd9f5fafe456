package media

import (
	"time"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
)

// MaxCommentLength is measured in characters, not bytes.
const MaxCommentLength = 1000

// Status is the moderation state of an upload.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

type Video struct {
	models.Base
	PlayerID    uint              `gorm:"not null;index" json:"player_id"`
	URL         string            `gorm:"not null" json:"url"`
	PublicID    string            `gorm:"not null" json:"public_id"`
	Description string            `gorm:"type:text" json:"description"`
	Type        storage.MediaType `gorm:"type:varchar(10);not null;index" json:"type"`
	Status      Status            `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	MimeType    string            `gorm:"size:100" json:"mime_type"`
	SizeBytes   int64             `json:"size_bytes"`
}

// Title is how notifications refer to the upload.
func (v *Video) Title() string {
	if v.Description != "" {
		return v.Description
	}
	return "untitled"
}

type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_video" json:"user_id"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_like_user_video;index" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VideoID   uint      `gorm:"not null;index" json:"video_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is a comment with its author's display name.
type CommentView struct {
	Comment
	AuthorName string `json:"author_name"`
	AuthorRole string `json:"author_role"`
}

// FeedItem is an approved upload decorated for the browsing feed.
type FeedItem struct {
	Video
	PlayerName   string `json:"player_name"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	LikedByMe    bool   `json:"liked_by_me"`
}

// LikeResult is returned by both like and unlike.
type LikeResult struct {
	Liked        bool  `json:"liked"`
	AlreadyLiked *bool `json:"alreadyLiked,omitempty"`
	WasLiked     *bool `json:"wasLiked,omitempty"`
	LikeCount    int64 `json:"likeCount"`
}

// ListFilter narrows admin media listings. Zero values are ignored.
type ListFilter struct {
	Status   Status
	Type     storage.MediaType
	PlayerID uint
}
