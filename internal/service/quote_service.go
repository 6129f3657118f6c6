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

// QuoteService manages quote CRUD and the quote lifecycle.
// A quote moves draft -> sent -> approved or rejected; other transitions
// are rejected with ErrInvalidTransition.
type QuoteService struct {
	quoteRepo    *repository.QuoteRepository
	projectRepo  *repository.ProjectRepository
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	projectRepo *repository.ProjectRepository,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:    quoteRepo,
		projectRepo:  projectRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *QuoteService) Create(ctx context.Context, req *domain.CreateQuoteRequest) (*domain.QuoteDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", req.ProjectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	quote := &domain.Quote{
		ProjectID:         req.ProjectID,
		MaterialsEstimate: req.MaterialsEstimate,
		LaborEstimate:     req.LaborEstimate,
		TotalEstimate:     req.MaterialsEstimate + req.LaborEstimate,
		Status:            domain.QuoteStatusDraft,
		Notes:             req.Notes,
		ValidUntil:        req.ValidUntil.Ptr(),
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	// A new quote moves a pending project into the quoted state
	if project.Status == domain.ProjectStatusPending {
		project.Status = domain.ProjectStatusQuoted
		if err := s.projectRepo.Update(ctx, project); err != nil {
			s.logger.Warn("failed to update project status after quote", zap.Error(err))
		}
	}

	return s.GetByID(ctx, quote.ID)
}

func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// Update edits estimates and notes. Status changes go through the
// lifecycle methods, not here.
func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateQuoteRequest) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	quote.MaterialsEstimate = req.MaterialsEstimate
	quote.LaborEstimate = req.LaborEstimate
	quote.TotalEstimate = req.MaterialsEstimate + req.LaborEstimate
	quote.Notes = req.Notes
	if req.ValidUntil.Valid {
		quote.ValidUntil = req.ValidUntil.Ptr()
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.quoteRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get quote: %w", err)
	}
	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	return nil
}

func (s *QuoteService) List(ctx context.Context, page, pageSize int, status domain.QuoteStatus, projectID *uuid.UUID) ([]domain.QuoteDTO, int64, error) {
	quotes, total, err := s.quoteRepo.List(ctx, page, pageSize, status, projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}

	dtos := make([]domain.QuoteDTO, len(quotes))
	for i := range quotes {
		dtos[i] = mapper.ToQuoteDTO(&quotes[i])
	}

	return dtos, total, nil
}

// Send transitions a draft quote to sent and stamps the sent date
func (s *QuoteService) Send(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if quote.Status != domain.QuoteStatusDraft {
		return nil, fmt.Errorf("%w: cannot send quote in status %q", ErrInvalidTransition, quote.Status)
	}

	now := nowDate()
	quote.Status = domain.QuoteStatusSent
	quote.SentDate = &now
	if quote.ValidUntil == nil {
		validUntil := now.AddDate(0, 0, 30)
		quote.ValidUntil = &validUntil
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to send quote: %w", err)
	}

	s.recordActivity(ctx, domain.ActivityQuoteSent, quote)

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// Approve transitions a sent quote to approved and moves its project forward
func (s *QuoteService) Approve(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if quote.Status != domain.QuoteStatusSent {
		return nil, fmt.Errorf("%w: cannot approve quote in status %q", ErrInvalidTransition, quote.Status)
	}

	now := nowDate()
	quote.Status = domain.QuoteStatusApproved
	quote.ApprovedDate = &now

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to approve quote: %w", err)
	}

	if quote.Project != nil && quote.Project.Status == domain.ProjectStatusQuoted {
		quote.Project.Status = domain.ProjectStatusApproved
		if err := s.projectRepo.Update(ctx, quote.Project); err != nil {
			s.logger.Warn("failed to update project status after approval", zap.Error(err))
		}
	}

	s.recordActivity(ctx, domain.ActivityQuoteApproved, quote)

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// Reject transitions a sent quote to rejected
func (s *QuoteService) Reject(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	if quote.Status != domain.QuoteStatusSent {
		return nil, fmt.Errorf("%w: cannot reject quote in status %q", ErrInvalidTransition, quote.Status)
	}

	now := nowDate()
	quote.Status = domain.QuoteStatusRejected
	quote.RejectedDate = &now

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to reject quote: %w", err)
	}

	s.recordActivity(ctx, domain.ActivityQuoteRejected, quote)

	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

func (s *QuoteService) recordActivity(ctx context.Context, activityType domain.ActivityType, quote *domain.Quote) {
	title := quote.ProjectID.String()
	if quote.Project != nil {
		title = quote.Project.Title
	}
	activity := &domain.Activity{
		Type:        activityType,
		Description: fmt.Sprintf("Quote for project '%s' is now %s", title, quote.Status),
		ProjectID:   &quote.ProjectID,
	}
	if userCtx, ok := auth.FromContext(ctx); ok {
		activity.UserID = &userCtx.UserID
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}
}
