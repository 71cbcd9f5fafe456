package shortlist

import (
	"context"

	"gorm.io/gorm"
)

type ShortlistRepository interface {
	Create(ctx context.Context, s *Shortlist) error
	Exists(ctx context.Context, scoutID, playerID uint) (bool, error)
	ListByScout(ctx context.Context, scoutID uint) ([]Shortlist, error)
	Delete(ctx context.Context, scoutID, playerID uint) (bool, error)
	WithTransaction(ctx context.Context, txFunc func(ShortlistRepository) error) error
}

type shortlistRepository struct {
	db *gorm.DB
}

func NewShortlistRepository(db *gorm.DB) ShortlistRepository {
	return &shortlistRepository{db: db}
}

func (r *shortlistRepository) WithTransaction(ctx context.Context, txFunc func(ShortlistRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&shortlistRepository{db: tx})
	})
}

func (r *shortlistRepository) Create(ctx context.Context, s *Shortlist) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shortlistRepository) Exists(ctx context.Context, scoutID, playerID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Shortlist{}).
		Where("scout_id = ? AND player_id = ?", scoutID, playerID).Count(&n).Error
	return n > 0, err
}

func (r *shortlistRepository) ListByScout(ctx context.Context, scoutID uint) ([]Shortlist, error) {
	var rows []Shortlist
	err := r.db.WithContext(ctx).Where("scout_id = ?", scoutID).Order("created_at desc, id desc").Find(&rows).Error
	return rows, err
}

// Delete reports whether a row was removed.
func (r *shortlistRepository) Delete(ctx context.Context, scoutID, playerID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("scout_id = ? AND player_id = ?", scoutID, playerID).Delete(&Shortlist{})
	return res.RowsAffected > 0, res.Error
}
