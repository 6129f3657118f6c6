package service

import (
	"context"
	"fmt"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/mapper"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ActivityService struct {
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewActivityService(activityRepo *repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{activityRepo: activityRepo, logger: logger}
}

func (s *ActivityService) List(ctx context.Context, page, pageSize int) ([]domain.ActivityDTO, int64, error) {
	activities, total, err := s.activityRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}

	dtos := make([]domain.ActivityDTO, len(activities))
	for i := range activities {
		dtos[i] = mapper.ToActivityDTO(&activities[i])
	}

	return dtos, total, nil
}

func (s *ActivityService) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]domain.ActivityDTO, error) {
	activities, err := s.activityRepo.ListByProject(ctx, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list project activities: %w", err)
	}

	dtos := make([]domain.ActivityDTO, len(activities))
	for i := range activities {
		dtos[i] = mapper.ToActivityDTO(&activities[i])
	}

	return dtos, nil
}
