package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/scout"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

// AuthRepository covers the account writes and profile reads registration and /me need.
type AuthRepository interface {
	// CreateAccount inserts the user and, when profile is non-nil, the role profile
	// built from the new user ID, in one transaction.
	CreateAccount(ctx context.Context, u *user.User, profile func(userID uint) any) error
	GetPlayerProfile(ctx context.Context, userID uint) (*player.PlayerProfile, error)
	GetScoutProfile(ctx context.Context, userID uint) (*scout.ScoutProfile, error)
}

type authRepository struct {
	db      *gorm.DB
	players player.PlayerRepository
	scouts  scout.ScoutRepository
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{
		db:      db,
		players: player.NewPlayerRepository(db),
		scouts:  scout.NewScoutRepository(db),
	}
}

func (r *authRepository) CreateAccount(ctx context.Context, u *user.User, profile func(userID uint) any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		if profile == nil {
			return nil
		}
		if p := profile(u.ID); p != nil {
			return tx.Create(p).Error
		}
		return nil
	})
}

func (r *authRepository) GetPlayerProfile(ctx context.Context, userID uint) (*player.PlayerProfile, error) {
	return r.players.GetProfileByUserID(ctx, userID)
}

func (r *authRepository) GetScoutProfile(ctx context.Context, userID uint) (*scout.ScoutProfile, error) {
	return r.scouts.GetProfileByUserID(ctx, userID)
}
