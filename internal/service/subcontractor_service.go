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

type SubcontractorService struct {
	subRepo *repository.SubcontractorRepository
	logger  *zap.Logger
}

func NewSubcontractorService(subRepo *repository.SubcontractorRepository, logger *zap.Logger) *SubcontractorService {
	return &SubcontractorService{subRepo: subRepo, logger: logger}
}

func (s *SubcontractorService) Create(ctx context.Context, req *domain.CreateSubcontractorRequest) (*domain.SubcontractorDTO, error) {
	sub := &domain.Subcontractor{
		Name:      req.Name,
		Company:   req.Company,
		Specialty: req.Specialty,
		Email:     req.Email,
		Phone:     req.Phone,
		Rate:      req.Rate,
		RateType:  req.RateType,
		Status:    req.Status,
	}
	if sub.RateType == "" {
		sub.RateType = domain.RateTypeHourly
	}
	if sub.Status == "" {
		sub.Status = domain.SubcontractorActive
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subcontractor: %w", err)
	}

	dto := mapper.ToSubcontractorDTO(sub)
	return &dto, nil
}

func (s *SubcontractorService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubcontractorDTO, error) {
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subcontractor: %w", err)
	}

	dto := mapper.ToSubcontractorDTO(sub)
	return &dto, nil
}

func (s *SubcontractorService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateSubcontractorRequest) (*domain.SubcontractorDTO, error) {
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subcontractor: %w", err)
	}

	sub.Name = req.Name
	sub.Company = req.Company
	sub.Specialty = req.Specialty
	sub.Email = req.Email
	sub.Phone = req.Phone
	sub.Rate = req.Rate
	if req.RateType != "" {
		sub.RateType = req.RateType
	}
	if req.Status != "" {
		sub.Status = req.Status
	}

	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to update subcontractor: %w", err)
	}

	dto := mapper.ToSubcontractorDTO(sub)
	return &dto, nil
}

func (s *SubcontractorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.subRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get subcontractor: %w", err)
	}
	if err := s.subRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subcontractor: %w", err)
	}
	return nil
}

func (s *SubcontractorService) List(ctx context.Context, page, pageSize int, search string, status domain.SubcontractorStatus) ([]domain.SubcontractorDTO, int64, error) {
	subs, total, err := s.subRepo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subcontractors: %w", err)
	}

	dtos := make([]domain.SubcontractorDTO, len(subs))
	for i := range subs {
		dtos[i] = mapper.ToSubcontractorDTO(&subs[i])
	}

	return dtos, total, nil
}
