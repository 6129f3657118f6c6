package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/mapper"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SupplierService struct {
	supplierRepo *repository.SupplierRepository
	logger       *zap.Logger
}

func NewSupplierService(supplierRepo *repository.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, logger: logger}
}

func (s *SupplierService) Create(ctx context.Context, req *domain.CreateSupplierRequest) (*domain.SupplierDTO, error) {
	supplier := &domain.Supplier{
		Name:         req.Name,
		Company:      req.Company,
		Category:     req.Category,
		Email:        req.Email,
		Phone:        req.Phone,
		PaymentTerms: req.PaymentTerms,
		Status:       req.Status,
	}
	if supplier.Status == "" {
		supplier.Status = domain.SupplierActive
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	dto := mapper.ToSupplierDTO(supplier)
	return &dto, nil
}

func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupplierDTO, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	dto := mapper.ToSupplierDTO(supplier)
	return &dto, nil
}

func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateSupplierRequest) (*domain.SupplierDTO, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	supplier.Name = req.Name
	supplier.Company = req.Company
	supplier.Category = req.Category
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.PaymentTerms = req.PaymentTerms
	if req.Status != "" {
		supplier.Status = req.Status
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	dto := mapper.ToSupplierDTO(supplier)
	return &dto, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.supplierRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get supplier: %w", err)
	}
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}

func (s *SupplierService) List(ctx context.Context, page, pageSize int, search, category string, status domain.SupplierStatus) ([]domain.SupplierDTO, int64, error) {
	suppliers, total, err := s.supplierRepo.List(ctx, page, pageSize, search, category, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}

	dtos := make([]domain.SupplierDTO, len(suppliers))
	for i := range suppliers {
		dtos[i] = mapper.ToSupplierDTO(&suppliers[i])
	}

	return dtos, total, nil
}
