package repository

import (
	"context"
	"strings"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubcontractorRepository struct {
	db *gorm.DB
}

func NewSubcontractorRepository(db *gorm.DB) *SubcontractorRepository {
	return &SubcontractorRepository{db: db}
}

func (r *SubcontractorRepository) Create(ctx context.Context, sub *domain.Subcontractor) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubcontractorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subcontractor, error) {
	var sub domain.Subcontractor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubcontractorRepository) Update(ctx context.Context, sub *domain.Subcontractor) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *SubcontractorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Subcontractor{}, "id = ?", id).Error
}

func (r *SubcontractorRepository) List(ctx context.Context, page, pageSize int, search string, status domain.SubcontractorStatus) ([]domain.Subcontractor, int64, error) {
	var subs []domain.Subcontractor
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Subcontractor{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ? OR LOWER(specialty) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("name ASC").Find(&subs).Error

	return subs, total, err
}
