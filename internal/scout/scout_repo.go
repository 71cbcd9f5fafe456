package scout

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ScoutRepository defines the interface for scout profile data.
type ScoutRepository interface {
	GetProfileByUserID(ctx context.Context, userID uint) (*ScoutProfile, error)
	SaveProfile(ctx context.Context, p *ScoutProfile) error
}

type scoutRepository struct {
	db *gorm.DB
}

func NewScoutRepository(db *gorm.DB) ScoutRepository {
	return &scoutRepository{db: db}
}

// GetProfileByUserID returns nil, nil when the scout has no profile yet.
func (r *scoutRepository) GetProfileByUserID(ctx context.Context, userID uint) (*ScoutProfile, error) {
	var p ScoutProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *scoutRepository) SaveProfile(ctx context.Context, p *ScoutProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
