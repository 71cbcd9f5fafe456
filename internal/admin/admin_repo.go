package admin

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/media"
	"github.com/DhavalSuthar-24/scoutnet/internal/notification"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/scout"
	"github.com/DhavalSuthar-24/scoutnet/internal/shortlist"
	"github.com/DhavalSuthar-24/scoutnet/internal/tryout"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
)

type AdminRepository interface {
	// DeleteUserCascade removes the user and every row that references it, returning the
	// storage IDs of the uploads that went with it.
	DeleteUserCascade(ctx context.Context, userID uint) ([]string, error)
	GetPlayerProfile(ctx context.Context, userID uint) (*player.PlayerProfile, error)
	GetScoutProfile(ctx context.Context, userID uint) (*scout.ScoutProfile, error)
}

type adminRepository struct {
	db      *gorm.DB
	players player.PlayerRepository
	scouts  scout.ScoutRepository
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{
		db:      db,
		players: player.NewPlayerRepository(db),
		scouts:  scout.NewScoutRepository(db),
	}
}

func (r *adminRepository) GetPlayerProfile(ctx context.Context, userID uint) (*player.PlayerProfile, error) {
	return r.players.GetProfileByUserID(ctx, userID)
}

func (r *adminRepository) GetScoutProfile(ctx context.Context, userID uint) (*scout.ScoutProfile, error) {
	return r.scouts.GetProfileByUserID(ctx, userID)
}

type cascadeStep struct {
	model any
	query string
	args  []any
}

func (r *adminRepository) DeleteUserCascade(ctx context.Context, userID uint) ([]string, error) {
	var publicIDs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&media.Video{}).Where("player_id = ? AND public_id <> ''", userID).Pluck("public_id", &ids).Error; err != nil {
			return err
		}
		publicIDs = append(publicIDs, ids...)
		ids = nil
		if err := tx.Model(&player.PlayerProfile{}).Where("user_id = ? AND profile_image_id <> ''", userID).Pluck("profile_image_id", &ids).Error; err != nil {
			return err
		}
		publicIDs = append(publicIDs, ids...)
		ids = nil
		if err := tx.Model(&scout.ScoutProfile{}).Where("user_id = ? AND profile_image_id <> ''", userID).Pluck("profile_image_id", &ids).Error; err != nil {
			return err
		}
		publicIDs = append(publicIDs, ids...)

		var videoIDs, tryoutIDs []uint
		if err := tx.Model(&media.Video{}).Where("player_id = ?", userID).Pluck("id", &videoIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&tryout.Tryout{}).Where("scout_id = ?", userID).Pluck("id", &tryoutIDs).Error; err != nil {
			return err
		}

		steps := []cascadeStep{
			{&media.Like{}, "user_id = ?", []any{userID}},
			{&media.Comment{}, "user_id = ?", []any{userID}},
			{&tryout.Invitation{}, "player_id = ?", []any{userID}},
			{&shortlist.Shortlist{}, "scout_id = ? OR player_id = ?", []any{userID, userID}},
			{&notification.Notification{}, "user_id = ?", []any{userID}},
			{&player.PlayerStats{}, "player_id = ?", []any{userID}},
			{&player.PlayerProfile{}, "user_id = ?", []any{userID}},
			{&scout.ScoutProfile{}, "user_id = ?", []any{userID}},
		}
		if len(videoIDs) > 0 {
			steps = append(steps,
				cascadeStep{&media.Like{}, "video_id IN ?", []any{videoIDs}},
				cascadeStep{&media.Comment{}, "video_id IN ?", []any{videoIDs}},
			)
		}
		if len(tryoutIDs) > 0 {
			steps = append(steps, cascadeStep{&tryout.Invitation{}, "tryout_id IN ?", []any{tryoutIDs}})
		}
		for _, s := range steps {
			if err := tx.Where(s.query, s.args...).Delete(s.model).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("player_id = ?", userID).Delete(&media.Video{}).Error; err != nil {
			return err
		}
		if err := tx.Where("scout_id = ?", userID).Delete(&tryout.Tryout{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user.User{}, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return publicIDs, nil
}
