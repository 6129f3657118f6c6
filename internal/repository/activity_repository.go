package repository

import (
	"context"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *ActivityRepository) List(ctx context.Context, page, pageSize int) ([]domain.Activity, int64, error) {
	var activities []domain.Activity
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Activity{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&activities).Error

	return activities, total, err
}

func (r *ActivityRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.Activity, error) {
	var activities []domain.Activity
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
