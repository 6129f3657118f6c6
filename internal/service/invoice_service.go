package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/mapper"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sequence kinds used for generated document numbers
const (
	sequenceKindInvoice       = "invoice"
	sequenceKindPurchaseOrder = "purchase_order"
)

type InvoiceService struct {
	invoiceRepo  *repository.InvoiceRepository
	projectRepo  *repository.ProjectRepository
	clientRepo   *repository.ClientRepository
	sequenceRepo *repository.NumberSequenceRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	projectRepo *repository.ProjectRepository,
	clientRepo *repository.ClientRepository,
	sequenceRepo *repository.NumberSequenceRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		sequenceRepo: sequenceRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// GenerateInvoiceNumber produces the next number in INV-YYYY-NNN format
func (s *InvoiceService) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	seq, err := s.sequenceRepo.GetNextNumber(ctx, sequenceKindInvoice, year)
	if err != nil {
		return "", fmt.Errorf("failed to generate invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%03d", year, seq), nil
}

func (s *InvoiceService) Create(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.InvoiceDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", req.ProjectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %s: %w", req.ClientID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	number := req.InvoiceNumber
	if number == "" {
		generated, err := s.GenerateInvoiceNumber(ctx)
		if err != nil {
			return nil, err
		}
		number = generated
	} else {
		taken, err := s.invoiceRepo.NumberExists(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("failed to check invoice number: %w", err)
		}
		if taken {
			return nil, ErrInvoiceNumberTaken
		}
	}

	items := "[]"
	if len(req.Items) > 0 {
		encoded, err := json.Marshal(req.Items)
		if err != nil {
			return nil, fmt.Errorf("failed to encode invoice items: %w", err)
		}
		items = string(encoded)
	}

	invoice := &domain.Invoice{
		ProjectID:     req.ProjectID,
		ClientID:      req.ClientID,
		InvoiceNumber: number,
		Amount:        req.Amount,
		Tax:           req.Tax,
		TotalAmount:   req.Amount + req.Tax,
		Status:        domain.InvoiceStatusDraft,
		IssueDate:     req.IssueDate.Ptr(),
		DueDate:       req.DueDate.Ptr(),
		PaymentMethod: req.PaymentMethod,
		Items:         items,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.recordActivity(ctx, domain.ActivityInvoiceCreated,
		fmt.Sprintf("Invoice %s was created", invoice.InvoiceNumber), invoice)

	return s.GetByID(ctx, invoice.ID)
}

func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInvoiceRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if req.Status != "" && !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidInput, req.Status)
	}

	invoice.Amount = req.Amount
	invoice.Tax = req.Tax
	invoice.TotalAmount = req.Amount + req.Tax
	if req.Status != "" {
		invoice.Status = req.Status
	}
	if req.IssueDate.Valid {
		invoice.IssueDate = req.IssueDate.Ptr()
	}
	if req.DueDate.Valid {
		invoice.DueDate = req.DueDate.Ptr()
	}
	if req.PaymentMethod != "" {
		invoice.PaymentMethod = req.PaymentMethod
	}
	if req.Items != nil {
		encoded, err := json.Marshal(req.Items)
		if err != nil {
			return nil, fmt.Errorf("failed to encode invoice items: %w", err)
		}
		invoice.Items = string(encoded)
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.invoiceRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get invoice: %w", err)
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

func (s *InvoiceService) List(ctx context.Context, page, pageSize int, status domain.InvoiceStatus, projectID, clientID *uuid.UUID) ([]domain.InvoiceDTO, int64, error) {
	invoices, total, err := s.invoiceRepo.List(ctx, page, pageSize, status, projectID, clientID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = mapper.ToInvoiceDTO(&invoices[i])
	}

	return dtos, total, nil
}

// MarkPaid records payment of an invoice and stamps the paid date
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID, req *domain.MarkInvoicePaidRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.Status == domain.InvoiceStatusPaid {
		return nil, ErrAlreadyPaid
	}
	if invoice.Status == domain.InvoiceStatusCancelled {
		return nil, fmt.Errorf("%w: cannot pay a cancelled invoice", ErrInvalidTransition)
	}

	paidDate := nowDate()
	if req.PaidDate.Valid {
		paidDate = req.PaidDate.Time
	}

	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidDate = &paidDate
	if req.PaymentMethod != "" {
		invoice.PaymentMethod = req.PaymentMethod
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	s.recordActivity(ctx, domain.ActivityInvoicePaid,
		fmt.Sprintf("Invoice %s was paid", invoice.InvoiceNumber), invoice)

	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}

func (s *InvoiceService) recordActivity(ctx context.Context, activityType domain.ActivityType, description string, invoice *domain.Invoice) {
	activity := &domain.Activity{
		Type:        activityType,
		Description: description,
		ProjectID:   &invoice.ProjectID,
		ClientID:    &invoice.ClientID,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		activity.UserID = &userCtx.UserID
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}
}
