package player

import (
	"context"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/apperrors"
	"github.com/DhavalSuthar-24/scoutnet/pkg/logger"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
)

const profileImageFolder = "profiles/players"

// ProfileInput carries optional profile fields; nil leaves the stored value alone.
type ProfileInput struct {
	Position    *string `json:"position" form:"position"`
	Club        *string `json:"club" form:"club"`
	Bio         *string `json:"bio" form:"bio"`
	DateOfBirth *string `json:"date_of_birth" form:"date_of_birth"`
}

// StatsInput uses pointers so a missing field is distinguishable from zero.
type StatsInput struct {
	MatchesPlayed *int `json:"matches_played"`
	Goals         *int `json:"goals"`
	Assists       *int `json:"assists"`
	YellowCards   *int `json:"yellow_cards"`
	RedCards      *int `json:"red_cards"`
}

// MaxStatValue bounds each submitted counter.
const MaxStatValue = 100000

// Validate requires every field and rejects negatives or values above MaxStatValue, naming the first offender.
func (in StatsInput) Validate() error {
	fields := []struct {
		name string
		v    *int
	}{
		{"matches_played", in.MatchesPlayed},
		{"goals", in.Goals},
		{"assists", in.Assists},
		{"yellow_cards", in.YellowCards},
		{"red_cards", in.RedCards},
	}
	for _, f := range fields {
		if f.v == nil {
			return apperrors.Validation("%s is required", f.name)
		}
		if *f.v < 0 {
			return apperrors.Validation("%s must be a non-negative integer", f.name)
		}
		if *f.v > MaxStatValue {
			return apperrors.Validation("%s must not exceed %d", f.name, MaxStatValue)
		}
	}
	return nil
}

// Profile is the player's own view of their account.
type Profile struct {
	User    *user.User     `json:"user"`
	Profile *PlayerProfile `json:"profile"`
	Age     *int           `json:"age"`
}

// StatsView is stats plus the derived rating.
type StatsView struct {
	PlayerStats
	Rating float64 `json:"rating"`
}

type PlayerService struct {
	repo   PlayerRepository
	users  user.UserRepository
	store  storage.MediaStore
	limits storage.Limits
	now    func() time.Time

	onChange []func(ctx context.Context)
}

func NewPlayerService(repo PlayerRepository, users user.UserRepository, store storage.MediaStore, limits storage.Limits) *PlayerService {
	return &PlayerService{repo: repo, users: users, store: store, limits: limits, now: time.Now}
}

// OnChange registers fn to run after a profile or stats write succeeds.
func (s *PlayerService) OnChange(fn func(ctx context.Context)) {
	s.onChange = append(s.onChange, fn)
}

func (s *PlayerService) changed(ctx context.Context) {
	for _, fn := range s.onChange {
		fn(ctx)
	}
}

func (s *PlayerService) loadPlayer(ctx context.Context, userID uint) (*user.User, error) {
	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Role != user.RolePlayer {
		return nil, apperrors.NotFound("Player")
	}
	return u, nil
}

func (s *PlayerService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	u, err := s.loadPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: u, Profile: p, Age: p.Age(s.now())}, nil
}

// UpdateProfile upserts the profile. When image is set it is uploaded first, the row
// is saved, and only then is the previous remote image removed.
func (s *PlayerService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput, image *storage.File) (*Profile, error) {
	if _, err := s.loadPlayer(ctx, userID); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &PlayerProfile{UserID: userID, Rating: MinRating}
	}

	if in.Position != nil {
		p.Position = strings.TrimSpace(*in.Position)
	}
	if in.Club != nil {
		p.Club = strings.TrimSpace(*in.Club)
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.DateOfBirth != nil {
		if strings.TrimSpace(*in.DateOfBirth) == "" {
			p.DateOfBirth = nil
		} else {
			dob, err := ParseDOB(*in.DateOfBirth, s.now())
			if err != nil {
				return nil, err
			}
			p.DateOfBirth = dob
		}
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
	s.changed(ctx)

	return s.GetProfile(ctx, userID)
}

// ParseDOB accepts YYYY-MM-DD or RFC3339 and rejects dates in the future.
func ParseDOB(raw string, now time.Time) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return nil, apperrors.Validation("date_of_birth must be formatted as YYYY-MM-DD")
		}
	}
	t = t.UTC()
	if t.After(now) {
		return nil, apperrors.Validation("date_of_birth cannot be in the future")
	}
	return &t, nil
}

func (s *PlayerService) GetStats(ctx context.Context, userID uint) (*StatsView, error) {
	stats, err := s.repo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &PlayerStats{PlayerID: userID}
	}
	return &StatsView{PlayerStats: *stats, Rating: ComputeRating(*stats)}, nil
}

// UpdatePerformanceStats replaces the player's stats and recomputes the rating in one transaction.
func (s *PlayerService) UpdatePerformanceStats(ctx context.Context, userID uint, in StatsInput) (*StatsView, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.loadPlayer(ctx, userID); err != nil {
		return nil, err
	}

	var view StatsView
	err := s.repo.WithTransaction(ctx, func(tx PlayerRepository) error {
		stats, err := tx.GetStats(ctx, userID)
		if err != nil {
			return err
		}
		if stats == nil {
			stats = &PlayerStats{PlayerID: userID}
		}
		stats.MatchesPlayed = *in.MatchesPlayed
		stats.Goals = *in.Goals
		stats.Assists = *in.Assists
		stats.YellowCards = *in.YellowCards
		stats.RedCards = *in.RedCards
		if err := tx.SaveStats(ctx, stats); err != nil {
			return err
		}

		rating := ComputeRating(*stats)
		if err := tx.SetRating(ctx, userID, rating); err != nil {
			return err
		}
		view = StatsView{PlayerStats: *stats, Rating: rating}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.changed(ctx)
	return &view, nil
}

func (s *PlayerService) Search(ctx context.Context, filter SearchFilter, page models.Page) ([]Summary, int64, error) {
	rows, total, err := s.repo.Search(ctx, filter, page)
	if rows == nil {
		rows = []Summary{}
	}
	return rows, total, err
}

func (s *PlayerService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	return s.repo.FilterOptions(ctx)
}

// GetPublicProfile is what other roles see of a player.
func (s *PlayerService) GetPublicProfile(ctx context.Context, userID uint) (*Profile, *StatsView, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.GetStats(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return profile, stats, nil
}
