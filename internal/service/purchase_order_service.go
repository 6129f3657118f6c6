package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/mapper"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PurchaseOrderService struct {
	orderRepo    *repository.PurchaseOrderRepository
	supplierRepo *repository.SupplierRepository
	sequenceRepo *repository.NumberSequenceRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewPurchaseOrderService(
	orderRepo *repository.PurchaseOrderRepository,
	supplierRepo *repository.SupplierRepository,
	sequenceRepo *repository.NumberSequenceRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		sequenceRepo: sequenceRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// GenerateOrderNumber produces the next number in PO-YYYY-NNN format
func (s *PurchaseOrderService) GenerateOrderNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	seq, err := s.sequenceRepo.GetNextNumber(ctx, sequenceKindPurchaseOrder, year)
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("PO-%d-%03d", year, seq), nil
}

// buildItems converts item requests into persisted line items with
// computed totals. Line totals are quantity * unitPrice in exact decimal
// arithmetic.
func buildItems(reqs []domain.CreatePurchaseOrderItemRequest) ([]domain.PurchaseOrderItem, decimal.Decimal) {
	items := make([]domain.PurchaseOrderItem, len(reqs))
	total := decimal.Zero
	for i, req := range reqs {
		lineTotal := req.Quantity.Decimal.Mul(req.UnitPrice.Decimal)
		items[i] = domain.PurchaseOrderItem{
			Description: req.Description,
			Quantity:    req.Quantity.Decimal,
			UnitPrice:   req.UnitPrice.Decimal,
			TotalPrice:  lineTotal,
		}
		total = total.Add(lineTotal)
	}
	return items, total
}

func (s *PurchaseOrderService) Create(ctx context.Context, req *domain.CreatePurchaseOrderRequest) (*domain.PurchaseOrderDTO, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, req.SupplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier %s: %w", req.SupplierID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	number, err := s.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	items, total := buildItems(req.Items)

	order := &domain.PurchaseOrder{
		SupplierID:      req.SupplierID,
		OrderNumber:     number,
		ProjectID:       req.ProjectID,
		QuoteID:         req.QuoteID,
		DeliveryAddress: req.DeliveryAddress,
		OrderDate:       req.OrderDate.Ptr(),
		ExpectedDate:    req.ExpectedDate.Ptr(),
		Status:          req.Status,
		TotalAmount:     total,
		Notes:           req.Notes,
		Items:           items,
	}
	if order.Status == "" {
		order.Status = domain.PurchaseOrderStatusDraft
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	activity := &domain.Activity{
		Type:        domain.ActivityPurchaseOrderPlaced,
		Description: fmt.Sprintf("Purchase order %s was placed with %s", order.OrderNumber, supplier.Name),
		ProjectID:   order.ProjectID,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		activity.UserID = &userCtx.UserID
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}

	return s.GetByID(ctx, order.ID)
}

func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	dto := mapper.ToPurchaseOrderDTO(order)
	return &dto, nil
}

func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdatePurchaseOrderRequest) (*domain.PurchaseOrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	order.DeliveryAddress = req.DeliveryAddress
	if req.OrderDate.Valid {
		order.OrderDate = req.OrderDate.Ptr()
	}
	if req.ExpectedDate.Valid {
		order.ExpectedDate = req.ExpectedDate.Ptr()
	}
	if req.Status != "" {
		order.Status = req.Status
	}
	order.Notes = req.Notes
	if req.Items != nil {
		items, total := buildItems(req.Items)
		for i := range items {
			items[i].PurchaseOrderID = order.ID
		}
		order.Items = items
		order.TotalAmount = total
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update purchase order: %w", err)
	}

	return s.GetByID(ctx, order.ID)
}

// Delete removes a purchase order and all of its line items
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orderRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get purchase order: %w", err)
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}
	return nil
}

func (s *PurchaseOrderService) List(ctx context.Context, page, pageSize int, status domain.PurchaseOrderStatus, supplierID, projectID *uuid.UUID) ([]domain.PurchaseOrderDTO, int64, error) {
	orders, total, err := s.orderRepo.List(ctx, page, pageSize, status, supplierID, projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase orders: %w", err)
	}

	dtos := make([]domain.PurchaseOrderDTO, len(orders))
	for i := range orders {
		dtos[i] = mapper.ToPurchaseOrderDTO(&orders[i])
	}

	return dtos, total, nil
}
