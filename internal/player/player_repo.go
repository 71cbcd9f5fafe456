package player

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
)

// PlayerRepository defines the interface for player profile and stats data.
type PlayerRepository interface {
	GetProfileByUserID(ctx context.Context, userID uint) (*PlayerProfile, error)
	GetProfilesByUserIDs(ctx context.Context, userIDs []uint) (map[uint]PlayerProfile, error)
	SaveProfile(ctx context.Context, p *PlayerProfile) error
	SetRating(ctx context.Context, userID uint, rating float64) error

	GetStats(ctx context.Context, playerID uint) (*PlayerStats, error)
	SaveStats(ctx context.Context, s *PlayerStats) error

	Search(ctx context.Context, filter SearchFilter, page models.Page) ([]Summary, int64, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)

	WithTransaction(ctx context.Context, txFunc func(PlayerRepository) error) error
}

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) WithTransaction(ctx context.Context, txFunc func(PlayerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&playerRepository{db: tx})
	})
}

// GetProfileByUserID returns nil, nil when the player has no profile yet.
func (r *playerRepository) GetProfileByUserID(ctx context.Context, userID uint) (*PlayerProfile, error) {
	var p PlayerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) GetProfilesByUserIDs(ctx context.Context, userIDs []uint) (map[uint]PlayerProfile, error) {
	out := make(map[uint]PlayerProfile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var profiles []PlayerProfile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		out[p.UserID] = p
	}
	return out, nil
}

// SaveProfile inserts when ID is zero, otherwise updates every column.
func (r *playerRepository) SaveProfile(ctx context.Context, p *PlayerProfile) error {
	if p.Rating == 0 {
		p.Rating = MinRating
	}
	return r.db.WithContext(ctx).Save(p).Error
}

// SetRating writes the rating, creating an empty profile if the player has none.
func (r *playerRepository) SetRating(ctx context.Context, userID uint, rating float64) error {
	res := r.db.WithContext(ctx).Model(&PlayerProfile{}).Where("user_id = ?", userID).Update("rating", rating)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&PlayerProfile{UserID: userID, Rating: rating}).Error
}

func (r *playerRepository) GetStats(ctx context.Context, playerID uint) (*PlayerStats, error) {
	var s PlayerStats
	if err := r.db.WithContext(ctx).Where("player_id = ?", playerID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *playerRepository) SaveStats(ctx context.Context, s *PlayerStats) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *playerRepository) Search(ctx context.Context, filter SearchFilter, page models.Page) ([]Summary, int64, error) {
	base := r.db.WithContext(ctx).Table("users").
		Joins("LEFT JOIN player_profiles ON player_profiles.user_id = users.id").
		Where("users.role = ? AND users.status = ?", "player", "active")

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("(LOWER(users.name) LIKE ? OR LOWER(player_profiles.bio) LIKE ?)", like, like)
	}
	if filter.Position != "" {
		base = base.Where("LOWER(player_profiles.position) = ?", strings.ToLower(filter.Position))
	}
	if filter.Club != "" {
		base = base.Where("LOWER(player_profiles.club) LIKE ?", "%"+strings.ToLower(filter.Club)+"%")
	}
	if filter.MinRating > 0 {
		base = base.Where("player_profiles.rating >= ?", filter.MinRating)
	}
	now := time.Now().UTC()
	if filter.MinAge > 0 {
		// born on or before now - MinAge years
		base = base.Where("player_profiles.date_of_birth <= ?", now.AddDate(-filter.MinAge, 0, 0))
	}
	if filter.MaxAge > 0 {
		base = base.Where("player_profiles.date_of_birth > ?", now.AddDate(-(filter.MaxAge+1), 0, 0))
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Summary
	err := base.
		Select("users.id AS user_id, users.name AS name, player_profiles.position AS position, " +
			"player_profiles.club AS club, COALESCE(player_profiles.rating, 1) AS rating, " +
			"player_profiles.profile_image AS profile_image, player_profiles.date_of_birth AS date_of_birth").
		Order("rating desc, users.id asc").
		Offset(page.Offset()).Limit(page.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		if rows[i].DateOfBirth != nil {
			age := AgeAt(*rows[i].DateOfBirth, now)
			rows[i].Age = &age
		}
	}
	return rows, total, nil
}

func (r *playerRepository) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	opts := &FilterOptions{Positions: []string{}, Clubs: []string{}}
	err := r.db.WithContext(ctx).Model(&PlayerProfile{}).
		Where("position <> ''").Distinct().Order("position").Pluck("position", &opts.Positions).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(&PlayerProfile{}).
		Where("club <> ''").Distinct().Order("club").Pluck("club", &opts.Clubs).Error
	if err != nil {
		return nil, err
	}
	return opts, nil
}
