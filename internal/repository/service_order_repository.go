package repository

import (
	"context"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ServiceOrderRepository struct {
	db *gorm.DB
}

func NewServiceOrderRepository(db *gorm.DB) *ServiceOrderRepository {
	return &ServiceOrderRepository{db: db}
}

func (r *ServiceOrderRepository) Create(ctx context.Context, order *domain.ServiceOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *ServiceOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceOrder, error) {
	var order domain.ServiceOrder
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Supervisor").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *ServiceOrderRepository) Update(ctx context.Context, order *domain.ServiceOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *ServiceOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ServiceOrder{}, "id = ?", id).Error
}

func (r *ServiceOrderRepository) List(ctx context.Context, page, pageSize int, status domain.ServiceOrderStatus, projectID *uuid.UUID) ([]domain.ServiceOrder, int64, error) {
	var orders []domain.ServiceOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ServiceOrder{}).
		Preload("Project").
		Preload("Supervisor")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&orders).Error

	return orders, total, err
}

// AppendBeforeImages adds uploaded file paths taken before the work started
func (r *ServiceOrderRepository) AppendBeforeImages(ctx context.Context, id uuid.UUID, paths []string) error {
	var order domain.ServiceOrder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return err
	}
	order.BeforeImages = append(order.BeforeImages, paths...)
	return r.db.WithContext(ctx).Model(&order).Update("before_images", pq.StringArray(order.BeforeImages)).Error
}

// AppendAfterImages adds uploaded file paths taken after the work finished
func (r *ServiceOrderRepository) AppendAfterImages(ctx context.Context, id uuid.UUID, paths []string) error {
	var order domain.ServiceOrder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return err
	}
	order.AfterImages = append(order.AfterImages, paths...)
	return r.db.WithContext(ctx).Model(&order).Update("after_images", pq.StringArray(order.AfterImages)).Error
}
