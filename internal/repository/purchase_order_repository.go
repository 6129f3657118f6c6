package repository

import (
	"context"
	"errors"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

func (r *PurchaseOrderRepository) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Project").
		Preload("Items").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByNumber looks up a purchase order by its unique order number
func (r *PurchaseOrderRepository) GetByNumber(ctx context.Context, number string) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.db.WithContext(ctx).Where("order_number = ?", number).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// NumberExists reports whether an order number is already taken
func (r *PurchaseOrderRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	_, err := r.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update saves the order header and replaces its line items in one
// transaction. Items carry an ON DELETE CASCADE constraint so removing
// the parent never strands lines.
func (r *PurchaseOrderRepository) Update(ctx context.Context, order *domain.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", order.ID).Delete(&domain.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Save(order).Error
	})
}

func (r *PurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).Delete(&domain.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.PurchaseOrder{}, "id = ?", id).Error
	})
}

func (r *PurchaseOrderRepository) List(ctx context.Context, page, pageSize int, status domain.PurchaseOrderStatus, supplierID, projectID *uuid.UUID) ([]domain.PurchaseOrder, int64, error) {
	var orders []domain.PurchaseOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.PurchaseOrder{}).
		Preload("Supplier").
		Preload("Project").
		Preload("Items")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
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
