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

type ClientService struct {
	clientRepo   *repository.ClientRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.ClientDTO, error) {
	client := &domain.Client{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Classification: req.Classification,
		Type:           req.Type,
		Notes:          req.Notes,
	}
	if client.Classification == "" {
		client.Classification = domain.ClientClassificationResidential
	}
	if client.Type == "" {
		client.Type = domain.ClientTypeClient
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.recordActivity(ctx, domain.ActivityClientCreated, fmt.Sprintf("Client '%s' was created", client.Name), client.ID)

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClientWithProjectsDTO, error) {
	client, err := s.clientRepo.GetWithProjects(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	dto := mapper.ToClientWithProjectsDTO(client)
	return &dto, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.ClientDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	if req.Classification != "" {
		client.Classification = req.Classification
	}
	if req.Type != "" {
		client.Type = req.Type
	}
	client.Notes = req.Notes

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.recordActivity(ctx, domain.ActivityClientUpdated, fmt.Sprintf("Client '%s' was updated", client.Name), client.ID)

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *ClientService) List(ctx context.Context, page, pageSize int, search string, classification domain.ClientClassification, clientType domain.ClientType) ([]domain.ClientDTO, int64, error) {
	clients, total, err := s.clientRepo.List(ctx, page, pageSize, search, classification, clientType)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = mapper.ToClientDTO(&clients[i])
		count, err := s.clientRepo.GetProjectsCount(ctx, clients[i].ID)
		if err == nil {
			dtos[i].ProjectCount = count
		}
	}

	return dtos, total, nil
}

func (s *ClientService) recordActivity(ctx context.Context, activityType domain.ActivityType, description string, clientID uuid.UUID) {
	activity := &domain.Activity{
		Type:        activityType,
		Description: description,
		ClientID:    &clientID,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		activity.UserID = &userCtx.UserID
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}
}
