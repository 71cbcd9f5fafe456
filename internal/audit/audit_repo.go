package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/internal/models"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *SystemLog) error
	List(ctx context.Context, filter Filter, page models.Page) ([]SystemLog, int64, error)
	All(ctx context.Context, filter Filter) ([]SystemLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *SystemLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) scoped(ctx context.Context, filter Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&SystemLog{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	return query
}

func (r *auditRepository) List(ctx context.Context, filter Filter, page models.Page) ([]SystemLog, int64, error) {
	var logs []SystemLog
	var total int64

	query := r.scoped(ctx, filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at desc, id desc").Offset(page.Offset()).Limit(page.Limit).Find(&logs).Error
	return logs, total, err
}

func (r *auditRepository) All(ctx context.Context, filter Filter) ([]SystemLog, error) {
	var logs []SystemLog
	err := r.scoped(ctx, filter).Order("created_at desc, id desc").Find(&logs).Error
	return logs, err
}
