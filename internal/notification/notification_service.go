package notification

import (
	"context"
	"fmt"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
)

// Notifier appends inbox messages after a mutation has succeeded.
// Implementations never return errors to the caller.
type Notifier interface {
	Notify(ctx context.Context, userID uint, kind Kind, args ...any)
}

// Format renders the template for kind.
func Format(kind Kind, args ...any) (string, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("unknown notification kind %q", kind)
	}
	return fmt.Sprintf(tmpl, args...), nil
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify is best-effort: failures are logged and dropped.
func (s *NotificationService) Notify(ctx context.Context, userID uint, kind Kind, args ...any) {
	logger.BestEffort(ctx, "notify:"+string(kind), func() error {
		if userID == 0 {
			return fmt.Errorf("missing recipient for %s", kind)
		}
		msg, err := Format(kind, args...)
		if err != nil {
			return err
		}
		return s.repo.Create(ctx, &Notification{UserID: userID, Kind: kind, Message: msg})
	})
}

// Inbox is one page of a user's notifications plus the unread total.
type Inbox struct {
	Items       []Notification `json:"notifications"`
	Total       int64          `json:"total"`
	UnreadCount int64          `json:"unread_count"`
}

func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, page models.Page) (*Inbox, error) {
	items, total, err := s.repo.ListByUser(ctx, userID, unreadOnly, page)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Notification{}
	}
	return &Inbox{Items: items, Total: total, UnreadCount: unread}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("Notification")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID uint) error {
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("Notification")
	}
	return nil
}
