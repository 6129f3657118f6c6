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

type StaffService struct {
	staffRepo *repository.StaffRepository
	logger    *zap.Logger
}

func NewStaffService(staffRepo *repository.StaffRepository, logger *zap.Logger) *StaffService {
	return &StaffService{staffRepo: staffRepo, logger: logger}
}

func (s *StaffService) Create(ctx context.Context, req *domain.CreateStaffRequest) (*domain.StaffDTO, error) {
	staff := &domain.Staff{
		Name:         req.Name,
		Role:         req.Role,
		Email:        req.Email,
		Phone:        req.Phone,
		Availability: req.Availability,
		Skills:       req.Skills,
	}
	if staff.Availability == "" {
		staff.Availability = domain.StaffAvailable
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}

	dto := mapper.ToStaffDTO(staff)
	return &dto, nil
}

func (s *StaffService) GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffDTO, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	dto := mapper.ToStaffDTO(staff)
	return &dto, nil
}

func (s *StaffService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateStaffRequest) (*domain.StaffDTO, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}

	staff.Name = req.Name
	staff.Role = req.Role
	staff.Email = req.Email
	staff.Phone = req.Phone
	if req.Availability != "" {
		staff.Availability = req.Availability
	}
	if req.Skills != nil {
		staff.Skills = req.Skills
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}

	dto := mapper.ToStaffDTO(staff)
	return &dto, nil
}

func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.staffRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get staff member: %w", err)
	}
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return nil
}

func (s *StaffService) List(ctx context.Context, page, pageSize int, search string, availability domain.StaffAvailability) ([]domain.StaffDTO, int64, error) {
	staff, total, err := s.staffRepo.List(ctx, page, pageSize, search, availability)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list staff: %w", err)
	}

	dtos := make([]domain.StaffDTO, len(staff))
	for i := range staff {
		dtos[i] = mapper.ToStaffDTO(&staff[i])
	}

	return dtos, total, nil
}
