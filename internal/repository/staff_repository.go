package repository

import (
	"context"
	"strings"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	var staff domain.Staff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Staff{}, "id = ?", id).Error
}

func (r *StaffRepository) List(ctx context.Context, page, pageSize int, search string, availability domain.StaffAvailability) ([]domain.Staff, int64, error) {
	var staff []domain.Staff
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Staff{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(role) LIKE ?", searchPattern, searchPattern)
	}
	if availability != "" {
		query = query.Where("availability = ?", availability)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("name ASC").Find(&staff).Error

	return staff, total, err
}
