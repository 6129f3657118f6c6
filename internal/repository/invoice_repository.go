package repository

import (
	"context"
	"errors"
	"time"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Client").
		Where("id = ?", id).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetByNumber looks up an invoice by its unique invoice number
func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).Where("invoice_number = ?", number).First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// NumberExists reports whether an invoice number is already taken
func (r *InvoiceRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	_, err := r.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Invoice{}, "id = ?", id).Error
}

func (r *InvoiceRepository) List(ctx context.Context, page, pageSize int, status domain.InvoiceStatus, projectID, clientID *uuid.UUID) ([]domain.Invoice, int64, error) {
	var invoices []domain.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Preload("Project").
		Preload("Client")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&invoices).Error

	return invoices, total, err
}

// ListAll returns every invoice, used by the reporting aggregators
func (r *InvoiceRepository) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).Preload("Client").Order("created_at ASC").Find(&invoices).Error
	return invoices, err
}

// MarkOverdue flips sent invoices past their due date to overdue.
// Returns the number of rows updated.
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", domain.InvoiceStatusSent, now).
		Update("status", domain.InvoiceStatusOverdue)
	return result.RowsAffected, result.Error
}
