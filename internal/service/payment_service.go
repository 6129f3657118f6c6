package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/mapper"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService struct {
	paymentRepo       *repository.PaymentRepository
	staffRepo         *repository.StaffRepository
	subcontractorRepo *repository.SubcontractorRepository
	supplierRepo      *repository.SupplierRepository
	activityRepo      *repository.ActivityRepository
	logger            *zap.Logger
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	staffRepo *repository.StaffRepository,
	subcontractorRepo *repository.SubcontractorRepository,
	supplierRepo *repository.SupplierRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:       paymentRepo,
		staffRepo:         staffRepo,
		subcontractorRepo: subcontractorRepo,
		supplierRepo:      supplierRepo,
		activityRepo:      activityRepo,
		logger:            logger,
	}
}

// resolveRecipient verifies the recipient exists and returns its display name
func (s *PaymentService) resolveRecipient(ctx context.Context, recipientType domain.PaymentRecipientType, id uuid.UUID) (string, error) {
	switch recipientType {
	case domain.RecipientStaff:
		staff, err := s.staffRepo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return staff.Name, nil
	case domain.RecipientSubcontractor:
		sub, err := s.subcontractorRepo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return sub.Name, nil
	case domain.RecipientSupplier:
		supplier, err := s.supplierRepo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return supplier.Name, nil
	default:
		return "", fmt.Errorf("%w: recipient type %q", ErrInvalidInput, recipientType)
	}
}

func (s *PaymentService) Create(ctx context.Context, req *domain.CreatePaymentRequest) (*domain.PaymentDTO, error) {
	recipientName, err := s.resolveRecipient(ctx, req.RecipientType, req.RecipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipient %s: %w", req.RecipientID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}

	if !req.Date.Valid {
		return nil, fmt.Errorf("%w: payment date is required", ErrInvalidInput)
	}

	payment := &domain.Payment{
		Amount:         req.Amount,
		Date:           req.Date.Time,
		RecipientType:  req.RecipientType,
		RecipientID:    req.RecipientID,
		PaymentType:    req.PaymentType,
		Status:         req.Status,
		Description:    req.Description,
		ProjectID:      req.ProjectID,
		ServiceOrderID: req.ServiceOrderID,
		InvoiceID:      req.InvoiceID,
	}
	if payment.Status == "" {
		payment.Status = domain.PaymentStatusPending
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		payment.CreatedByID = &userCtx.UserID
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	activity := &domain.Activity{
		Type:        domain.ActivityPaymentRecorded,
		Description: fmt.Sprintf("Payment of %.2f to %s was recorded", payment.Amount, recipientName),
		ProjectID:   payment.ProjectID,
		UserID:      payment.CreatedByID,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}

	dto, err := s.GetByID(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	dto.RecipientName = recipientName
	return dto, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentDTO, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	dto := mapper.ToPaymentDTO(payment)
	if name, err := s.resolveRecipient(ctx, payment.RecipientType, payment.RecipientID); err == nil {
		dto.RecipientName = name
	}
	return &dto, nil
}

func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdatePaymentRequest) (*domain.PaymentDTO, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	if _, err := s.resolveRecipient(ctx, req.RecipientType, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipient %s: %w", req.RecipientID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}
	if !req.Date.Valid {
		return nil, fmt.Errorf("%w: payment date is required", ErrInvalidInput)
	}

	payment.Amount = req.Amount
	payment.Date = req.Date.Time
	payment.RecipientType = req.RecipientType
	payment.RecipientID = req.RecipientID
	payment.PaymentType = req.PaymentType
	if req.Status != "" {
		payment.Status = req.Status
	}
	payment.Description = req.Description
	payment.ProjectID = req.ProjectID
	payment.ServiceOrderID = req.ServiceOrderID
	payment.InvoiceID = req.InvoiceID

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	return s.GetByID(ctx, payment.ID)
}

func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.paymentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get payment: %w", err)
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func (s *PaymentService) List(ctx context.Context, page, pageSize int, recipientType domain.PaymentRecipientType, status domain.PaymentStatus, projectID *uuid.UUID) ([]domain.PaymentDTO, int64, error) {
	payments, total, err := s.paymentRepo.List(ctx, page, pageSize, recipientType, status, projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	dtos := make([]domain.PaymentDTO, len(payments))
	for i := range payments {
		dtos[i] = mapper.ToPaymentDTO(&payments[i])
		if name, err := s.resolveRecipient(ctx, payments[i].RecipientType, payments[i].RecipientID); err == nil {
			dtos[i].RecipientName = name
		}
	}

	return dtos, total, nil
}
