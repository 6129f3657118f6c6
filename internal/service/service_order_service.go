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

type ServiceOrderService struct {
	orderRepo    *repository.ServiceOrderRepository
	projectRepo  *repository.ProjectRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewServiceOrderService(
	orderRepo *repository.ServiceOrderRepository,
	projectRepo *repository.ProjectRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *ServiceOrderService {
	return &ServiceOrderService{
		orderRepo:    orderRepo,
		projectRepo:  projectRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *ServiceOrderService) Create(ctx context.Context, req *domain.CreateServiceOrderRequest) (*domain.ServiceOrderDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", req.ProjectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	order := &domain.ServiceOrder{
		ProjectID:              req.ProjectID,
		Details:                req.Details,
		AssignedStaff:          req.AssignedStaff,
		AssignedSubcontractors: req.AssignedSubcontractors,
		SupervisorID:           req.SupervisorID,
		StartDate:              req.StartDate.Ptr(),
		EndDate:                req.EndDate.Ptr(),
		DueDate:                req.DueDate.Ptr(),
		Status:                 domain.ServiceOrderStatusPending,
		Language:               req.Language,
	}
	if order.Language == "" {
		order.Language = domain.ServiceOrderLanguageEnglish
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create service order: %w", err)
	}

	return s.GetByID(ctx, order.ID)
}

func (s *ServiceOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceOrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service order: %w", err)
	}

	dto := mapper.ToServiceOrderDTO(order)
	return &dto, nil
}

func (s *ServiceOrderService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateServiceOrderRequest) (*domain.ServiceOrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service order: %w", err)
	}

	// Completion goes through Complete, which requires a signature
	if req.Status == domain.ServiceOrderStatusCompleted && order.Status != domain.ServiceOrderStatusCompleted {
		return nil, fmt.Errorf("%w: completion requires client sign-off", ErrInvalidTransition)
	}

	order.Details = req.Details
	if req.AssignedStaff != nil {
		order.AssignedStaff = req.AssignedStaff
	}
	if req.AssignedSubcontractors != nil {
		order.AssignedSubcontractors = req.AssignedSubcontractors
	}
	if req.SupervisorID != nil {
		order.SupervisorID = req.SupervisorID
	}
	if req.StartDate.Valid {
		order.StartDate = req.StartDate.Ptr()
	}
	if req.EndDate.Valid {
		order.EndDate = req.EndDate.Ptr()
	}
	if req.DueDate.Valid {
		order.DueDate = req.DueDate.Ptr()
	}
	if req.Status != "" {
		order.Status = req.Status
	}
	if req.Language != "" {
		order.Language = req.Language
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update service order: %w", err)
	}

	dto := mapper.ToServiceOrderDTO(order)
	return &dto, nil
}

func (s *ServiceOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orderRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get service order: %w", err)
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service order: %w", err)
	}
	return nil
}

func (s *ServiceOrderService) List(ctx context.Context, page, pageSize int, status domain.ServiceOrderStatus, projectID *uuid.UUID) ([]domain.ServiceOrderDTO, int64, error) {
	orders, total, err := s.orderRepo.List(ctx, page, pageSize, status, projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list service orders: %w", err)
	}

	dtos := make([]domain.ServiceOrderDTO, len(orders))
	for i := range orders {
		dtos[i] = mapper.ToServiceOrderDTO(&orders[i])
	}

	return dtos, total, nil
}

// Complete closes a service order with the client's signature.
// Already-completed orders are rejected.
func (s *ServiceOrderService) Complete(ctx context.Context, id uuid.UUID, req *domain.CompleteServiceOrderRequest) (*domain.ServiceOrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service order: %w", err)
	}

	if order.Status == domain.ServiceOrderStatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	signedDate := nowDate()
	if req.SignedDate.Valid {
		signedDate = req.SignedDate.Time
	}

	order.Status = domain.ServiceOrderStatusCompleted
	order.ClientSignature = req.ClientSignature
	order.SignedDate = &signedDate
	if order.EndDate == nil {
		endDate := nowDate()
		order.EndDate = &endDate
	}
	if len(req.AfterImages) > 0 {
		order.AfterImages = append(order.AfterImages, req.AfterImages...)
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to complete service order: %w", err)
	}

	activity := &domain.Activity{
		Type:        domain.ActivityServiceOrderSigned,
		Description: fmt.Sprintf("Service order %s was signed off by the client", order.ID),
		ProjectID:   &order.ProjectID,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		activity.UserID = &userCtx.UserID
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}

	dto := mapper.ToServiceOrderDTO(order)
	return &dto, nil
}

// AttachBeforeImages records stored before-work image paths
func (s *ServiceOrderService) AttachBeforeImages(ctx context.Context, id uuid.UUID, paths []string) (*domain.ServiceOrderDTO, error) {
	if err := s.orderRepo.AppendBeforeImages(ctx, id, paths); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to attach images: %w", err)
	}
	return s.GetByID(ctx, id)
}

// AttachAfterImages records stored after-work image paths
func (s *ServiceOrderService) AttachAfterImages(ctx context.Context, id uuid.UUID, paths []string) (*domain.ServiceOrderDTO, error) {
	if err := s.orderRepo.AppendAfterImages(ctx, id, paths); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to attach images: %w", err)
	}
	return s.GetByID(ctx, id)
}
