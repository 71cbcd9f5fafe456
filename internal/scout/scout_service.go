package scout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/scoutnet/internal/media"
	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/cache"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
)

const (
	profileImageFolder = "profiles/scouts"
	filterOptionsKey   = "scout:filter-options"
)

// ProfileInput carries optional profile fields; nil leaves the stored value alone.
type ProfileInput struct {
	Organization *string `json:"organization" form:"organization"`
	Phone        *string `json:"phone" form:"phone"`
}

type ScoutService struct {
	repo    ScoutRepository
	users   user.UserRepository
	players *player.PlayerService
	media   *media.MediaService
	store   storage.MediaStore
	limits  storage.Limits
	cache   cache.Cache
	ttl     time.Duration
}

func NewScoutService(
	repo ScoutRepository,
	users user.UserRepository,
	players *player.PlayerService,
	mediaSvc *media.MediaService,
	store storage.MediaStore,
	limits storage.Limits,
	c cache.Cache,
	ttl time.Duration,
) *ScoutService {
	if c == nil {
		c = cache.Noop{}
	}
	s := &ScoutService{
		repo:    repo,
		users:   users,
		players: players,
		media:   mediaSvc,
		store:   store,
		limits:  limits,
		cache:   c,
		ttl:     ttl,
	}
	if players != nil {
		players.OnChange(s.invalidateFilterOptions)
	}
	return s
}

// invalidateFilterOptions drops the cached position/club lists. Search pages expire with the TTL.
func (s *ScoutService) invalidateFilterOptions(ctx context.Context) {
	logger.BestEffort(ctx, "cache:invalidate-filter-options", func() error {
		return s.cache.Delete(ctx, filterOptionsKey)
	})
}

func (s *ScoutService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Role != user.RoleScout {
		return nil, apperrors.NotFound("Scout")
	}
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: u, Profile: p}, nil
}

// Organization returns the scout's organization, or "" without a profile.
func (s *ScoutService) Organization(ctx context.Context, userID uint) (string, error) {
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil || p == nil {
		return "", err
	}
	return p.Organization, nil
}

// UpdateProfile upserts the profile, replacing the image the same way players do.
func (s *ScoutService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput, image *storage.File) (*Profile, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &ScoutProfile{UserID: userID}
	}
	if in.Organization != nil {
		p.Organization = strings.TrimSpace(*in.Organization)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}

	var oldImageID string
	var uploaded *storage.Object
	if image != nil {
		if err := storage.ValidateImage(image.ContentType, image.Size, s.limits); err != nil {
			return nil, err
		}
		uploaded, err = s.store.Upload(ctx, profileImageFolder, image.Filename, image.Body, image.Size, image.ContentType)
		if err != nil {
			return nil, apperrors.Storage("Failed to upload profile image", err)
		}
		oldImageID = p.ProfileImageID
		p.ProfileImage = uploaded.URL
		p.ProfileImageID = uploaded.PublicID
	}

	if err := s.repo.SaveProfile(ctx, p); err != nil {
		if uploaded != nil {
			logger.BestEffort(ctx, "storage:delete-orphan", func() error {
				return s.store.Delete(ctx, uploaded.PublicID)
			})
		}
		return nil, err
	}
	if oldImageID != "" {
		logger.BestEffort(ctx, "storage:delete-previous-image", func() error {
			return s.store.Delete(ctx, oldImageID)
		})
	}
	return s.GetProfile(ctx, userID)
}

func searchKey(f player.SearchFilter, page models.Page) string {
	return fmt.Sprintf("scout:search:%s|%s|%s|%.2f|%d|%d|%d|%d",
		strings.ToLower(strings.TrimSpace(f.Query)), strings.ToLower(f.Position), strings.ToLower(f.Club),
		f.MinRating, f.MinAge, f.MaxAge, page.Page, page.Limit)
}

// Search finds active players. Results are served from the cache while fresh.
func (s *ScoutService) Search(ctx context.Context, filter player.SearchFilter, page models.Page) (*SearchResult, error) {
	if filter.MinAge > 0 && filter.MaxAge > 0 && filter.MinAge > filter.MaxAge {
		return nil, apperrors.Validation("min_age cannot be greater than max_age")
	}
	if filter.MinRating < 0 || filter.MinRating > player.MaxRating {
		return nil, apperrors.Validation("min_rating must be between 0 and %.0f", player.MaxRating)
	}

	key := searchKey(filter, page)
	var cached SearchResult
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn(ctx).Err(err).Msg("search cache read failed")
	}

	rows, total, err := s.players.Search(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	res := &SearchResult{Players: rows, Total: total}
	logger.BestEffort(ctx, "cache:set-search", func() error {
		return s.cache.Set(ctx, key, res, s.ttl)
	})
	return res, nil
}

func (s *ScoutService) FilterOptions(ctx context.Context) (*player.FilterOptions, error) {
	var cached player.FilterOptions
	if err := s.cache.Get(ctx, filterOptionsKey, &cached); err == nil {
		return &cached, nil
	}
	opts, err := s.players.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}
	logger.BestEffort(ctx, "cache:set-filter-options", func() error {
		return s.cache.Set(ctx, filterOptionsKey, opts, s.ttl)
	})
	return opts, nil
}

// PlayerDetail returns a player's profile, stats and approved uploads.
func (s *ScoutService) PlayerDetail(ctx context.Context, playerID uint) (*PlayerDetail, error) {
	profile, stats, err := s.players.GetPublicProfile(ctx, playerID)
	if err != nil {
		return nil, err
	}
	videos, err := s.media.ApprovedByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &PlayerDetail{Profile: profile, Stats: stats, Videos: videos}, nil
}
