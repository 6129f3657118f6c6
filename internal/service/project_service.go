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

type ProjectService struct {
	projectRepo  *repository.ProjectRepository
	clientRepo   *repository.ClientRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	clientRepo *repository.ClientRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.ProjectDTO, error) {
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %s: %w", req.ClientID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	project := &domain.Project{
		ClientID:      req.ClientID,
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		ServiceType:   req.ServiceType,
		Status:        req.Status,
		Priority:      req.Priority,
		StartDate:     req.StartDate.Ptr(),
		DueDate:       req.DueDate.Ptr(),
		AssignedStaff: req.AssignedStaff,
	}
	if project.Status == "" {
		project.Status = domain.ProjectStatusPending
	}
	if project.Priority == "" {
		project.Priority = domain.ProjectPriorityMedium
	}
	if req.Progress != nil {
		project.Progress = *req.Progress
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.recordActivity(ctx, domain.ActivityProjectCreated,
		fmt.Sprintf("Project '%s' was created", project.Title), project.ID, project.ClientID)

	created, err := s.projectRepo.GetByID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}
	dto := mapper.ToProjectDTO(created)
	return &dto, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectRequest) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Status != "" && !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidInput, req.Status)
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Address = req.Address
	project.ServiceType = req.ServiceType
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.Priority != "" {
		project.Priority = req.Priority
	}
	if req.Progress != nil {
		project.Progress = *req.Progress
	}
	if req.StartDate.Valid {
		project.StartDate = req.StartDate.Ptr()
	}
	if req.DueDate.Valid {
		project.DueDate = req.DueDate.Ptr()
	}
	if req.CompletedDate.Valid {
		project.CompletedDate = req.CompletedDate.Ptr()
	}
	if req.AssignedStaff != nil {
		project.AssignedStaff = req.AssignedStaff
	}

	// Completing a project stamps the completion date when not supplied
	if project.Status == domain.ProjectStatusCompleted && project.CompletedDate == nil {
		now := nowDate()
		project.CompletedDate = &now
		project.Progress = 100
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.recordActivity(ctx, domain.ActivityProjectUpdated,
		fmt.Sprintf("Project '%s' was updated", project.Title), project.ID, project.ClientID)

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, search string, status domain.ProjectStatus, clientID *uuid.UUID) ([]domain.ProjectDTO, int64, error) {
	projects, total, err := s.projectRepo.List(ctx, page, pageSize, search, status, clientID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}

	return dtos, total, nil
}

// AttachImages records stored image paths on the project
func (s *ProjectService) AttachImages(ctx context.Context, id uuid.UUID, paths []string) (*domain.ProjectDTO, error) {
	if err := s.projectRepo.AppendImages(ctx, id, paths); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to attach images: %w", err)
	}
	return s.GetByID(ctx, id)
}

// AttachDocuments records stored document paths on the project
func (s *ProjectService) AttachDocuments(ctx context.Context, id uuid.UUID, paths []string) (*domain.ProjectDTO, error) {
	if err := s.projectRepo.AppendDocuments(ctx, id, paths); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to attach documents: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *ProjectService) recordActivity(ctx context.Context, activityType domain.ActivityType, description string, projectID, clientID uuid.UUID) {
	activity := &domain.Activity{
		Type:        activityType,
		Description: description,
		ProjectID:   &projectID,
		ClientID:    &clientID,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		activity.UserID = &userCtx.UserID
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}
}
