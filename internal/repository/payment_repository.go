package repository

import (
	"context"
	"time"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("CreatedBy").
		Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Payment{}, "id = ?", id).Error
}

func (r *PaymentRepository) List(ctx context.Context, page, pageSize int, recipientType domain.PaymentRecipientType, status domain.PaymentStatus, projectID *uuid.UUID) ([]domain.Payment, int64, error) {
	var payments []domain.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Preload("Project").
		Preload("CreatedBy")

	if recipientType != "" {
		query = query.Where("recipient_type = ?", recipientType)
	}
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
	err := query.Offset(offset).Limit(pageSize).Order("date DESC").Find(&payments).Error

	return payments, total, err
}

// ListAll returns every payment, used by the reporting aggregators
func (r *PaymentRepository) ListAll(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).Order("date ASC").Find(&payments).Error
	return payments, err
}

// ListInRange returns payments dated within [from, to]
func (r *PaymentRepository) ListInRange(ctx context.Context, from, to time.Time) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&payments).Error
	return payments, err
}
