package tryout

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
)

// TryoutRepository defines data access for tryouts, invitations and locations.
type TryoutRepository interface {
	CreateTryout(ctx context.Context, t *Tryout) error
	GetTryoutByID(ctx context.Context, id uint) (*Tryout, error)
	GetTryoutsByIDs(ctx context.Context, ids []uint) (map[uint]Tryout, error)
	UpdateTryout(ctx context.Context, t *Tryout) error
	DeleteTryout(ctx context.Context, id uint) error
	ListByScout(ctx context.Context, scoutID uint) ([]Tryout, error)
	ListUpcoming(ctx context.Context, from time.Time, location string, page models.Page) ([]Tryout, int64, error)
	CountTryouts(ctx context.Context) (int64, error)
	CountByLocation(ctx context.Context, name string) (int64, error)

	CreateInvitation(ctx context.Context, inv *Invitation) error
	GetInvitationByID(ctx context.Context, id uint) (*Invitation, error)
	InvitationExists(ctx context.Context, tryoutID, playerID uint) (bool, error)
	UpdateInvitation(ctx context.Context, inv *Invitation) error
	DeleteInvitation(ctx context.Context, id uint) error
	DeleteInvitationsByTryout(ctx context.Context, tryoutID uint) error
	ListInvitationsByTryout(ctx context.Context, tryoutID uint) ([]Invitation, error)
	ListInvitationsByPlayer(ctx context.Context, playerID uint) ([]Invitation, error)
	CountInvitationsByStatus(ctx context.Context) (map[string]int64, error)

	ListLocations(ctx context.Context) ([]Location, error)
	GetLocationByID(ctx context.Context, id uint) (*Location, error)
	LocationNameExists(ctx context.Context, name string) (bool, error)
	CreateLocation(ctx context.Context, l *Location) error
	DeleteLocation(ctx context.Context, id uint) error

	WithTransaction(ctx context.Context, txFunc func(TryoutRepository) error) error
}

type tryoutRepository struct {
	db *gorm.DB
}

func NewTryoutRepository(db *gorm.DB) TryoutRepository {
	return &tryoutRepository{db: db}
}

func (r *tryoutRepository) WithTransaction(ctx context.Context, txFunc func(TryoutRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&tryoutRepository{db: tx})
	})
}

func (r *tryoutRepository) CreateTryout(ctx context.Context, t *Tryout) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// GetTryoutByID returns nil, nil when the tryout does not exist.
func (r *tryoutRepository) GetTryoutByID(ctx context.Context, id uint) (*Tryout, error) {
	var t Tryout
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tryoutRepository) GetTryoutsByIDs(ctx context.Context, ids []uint) (map[uint]Tryout, error) {
	out := make(map[uint]Tryout, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var tryouts []Tryout
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tryouts).Error; err != nil {
		return nil, err
	}
	for _, t := range tryouts {
		out[t.ID] = t
	}
	return out, nil
}

func (r *tryoutRepository) UpdateTryout(ctx context.Context, t *Tryout) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tryoutRepository) DeleteTryout(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Tryout{}, id).Error
}

func (r *tryoutRepository) ListByScout(ctx context.Context, scoutID uint) ([]Tryout, error) {
	var tryouts []Tryout
	err := r.db.WithContext(ctx).Where("scout_id = ?", scoutID).Order("date asc, id asc").Find(&tryouts).Error
	return tryouts, err
}

func (r *tryoutRepository) ListUpcoming(ctx context.Context, from time.Time, location string, page models.Page) ([]Tryout, int64, error) {
	q := r.db.WithContext(ctx).Model(&Tryout{}).Where("date >= ?", from)
	if location = strings.TrimSpace(location); location != "" {
		q = q.Where("LOWER(location) = ?", strings.ToLower(location))
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var tryouts []Tryout
	err := q.Order("date asc, id asc").Offset(page.Offset()).Limit(page.Limit).Find(&tryouts).Error
	return tryouts, total, err
}

func (r *tryoutRepository) CountTryouts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Tryout{}).Count(&n).Error
	return n, err
}

func (r *tryoutRepository) CountByLocation(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Tryout{}).Where("LOWER(location) = ?", strings.ToLower(name)).Count(&n).Error
	return n, err
}

func (r *tryoutRepository) CreateInvitation(ctx context.Context, inv *Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

// GetInvitationByID returns nil, nil when the invitation does not exist.
func (r *tryoutRepository) GetInvitationByID(ctx context.Context, id uint) (*Invitation, error) {
	var inv Invitation
	if err := r.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *tryoutRepository) InvitationExists(ctx context.Context, tryoutID, playerID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Invitation{}).
		Where("tryout_id = ? AND player_id = ?", tryoutID, playerID).Count(&n).Error
	return n > 0, err
}

func (r *tryoutRepository) UpdateInvitation(ctx context.Context, inv *Invitation) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *tryoutRepository) DeleteInvitation(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Invitation{}, id).Error
}

func (r *tryoutRepository) DeleteInvitationsByTryout(ctx context.Context, tryoutID uint) error {
	return r.db.WithContext(ctx).Where("tryout_id = ?", tryoutID).Delete(&Invitation{}).Error
}

func (r *tryoutRepository) ListInvitationsByTryout(ctx context.Context, tryoutID uint) ([]Invitation, error) {
	var invs []Invitation
	err := r.db.WithContext(ctx).Where("tryout_id = ?", tryoutID).Order("created_at asc, id asc").Find(&invs).Error
	return invs, err
}

func (r *tryoutRepository) ListInvitationsByPlayer(ctx context.Context, playerID uint) ([]Invitation, error) {
	var invs []Invitation
	err := r.db.WithContext(ctx).Where("player_id = ?", playerID).Order("created_at desc, id desc").Find(&invs).Error
	return invs, err
}

func (r *tryoutRepository) CountInvitationsByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Key   string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&Invitation{}).
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

func (r *tryoutRepository) ListLocations(ctx context.Context) ([]Location, error) {
	var locs []Location
	err := r.db.WithContext(ctx).Order("name asc").Find(&locs).Error
	return locs, err
}

// GetLocationByID returns nil, nil when the location does not exist.
func (r *tryoutRepository) GetLocationByID(ctx context.Context, id uint) (*Location, error) {
	var l Location
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// LocationNameExists compares names case-insensitively.
func (r *tryoutRepository) LocationNameExists(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Location{}).Where("LOWER(name) = ?", strings.ToLower(name)).Count(&n).Error
	return n > 0, err
}

func (r *tryoutRepository) CreateLocation(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *tryoutRepository) DeleteLocation(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Location{}, id).Error
}
