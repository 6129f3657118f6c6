package service_test

import (
	"context"
	"testing"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/brushline/contractor-api/internal/service"
	"github.com/brushline/contractor-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupQuoteService(t *testing.T) (*gorm.DB, *service.QuoteService) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	svc := service.NewQuoteService(
		repository.NewQuoteRepository(db),
		repository.NewProjectRepository(db),
		repository.NewActivityRepository(db),
		zap.NewNop(),
	)
	return db, svc
}

func createDraftQuote(t *testing.T, db *gorm.DB, svc *service.QuoteService) *domain.QuoteDTO {
	client := testutil.CreateTestClient(t, db, "Quote Client "+testutil.UniqueSuffix())
	project := testutil.CreateTestProject(t, db, client.ID, "Exterior Repaint")

	quote, err := svc.Create(context.Background(), &domain.CreateQuoteRequest{
		ProjectID:         project.ID,
		MaterialsEstimate: 1200,
		LaborEstimate:     2800,
		Notes:             "Two coats, weather permitting",
	})
	require.NoError(t, err)
	return quote
}

func TestQuoteServiceCreate(t *testing.T) {
	db, svc := setupQuoteService(t)

	quote := createDraftQuote(t, db, svc)
	assert.Equal(t, domain.QuoteStatusDraft, quote.Status)
	assert.Equal(t, 4000.0, quote.TotalEstimate)
	assert.Nil(t, quote.SentDate)

	// Creating a quote moves a pending project into quoted
	projectRepo := repository.NewProjectRepository(db)
	project, err := projectRepo.GetByID(context.Background(), quote.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusQuoted, project.Status)
}

func TestQuoteServiceCreateUnknownProject(t *testing.T) {
	_, svc := setupQuoteService(t)

	_, err := svc.Create(context.Background(), &domain.CreateQuoteRequest{
		ProjectID:         uuid.New(),
		MaterialsEstimate: 100,
		LaborEstimate:     100,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestQuoteServiceLifecycle(t *testing.T) {
	db, svc := setupQuoteService(t)
	ctx := context.Background()

	quote := createDraftQuote(t, db, svc)

	sent, err := svc.Send(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusSent, sent.Status)
	require.NotNil(t, sent.SentDate)
	// A missing valid-until defaults to thirty days out
	require.NotNil(t, sent.ValidUntil)

	approved, err := svc.Approve(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedDate)

	// Approval moves the quoted project forward
	projectRepo := repository.NewProjectRepository(db)
	project, err := projectRepo.GetByID(ctx, quote.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusApproved, project.Status)
}

func TestQuoteServiceReject(t *testing.T) {
	db, svc := setupQuoteService(t)
	ctx := context.Background()

	quote := createDraftQuote(t, db, svc)

	_, err := svc.Send(ctx, quote.ID)
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedDate)
}

func TestQuoteServiceInvalidTransitions(t *testing.T) {
	db, svc := setupQuoteService(t)
	ctx := context.Background()

	quote := createDraftQuote(t, db, svc)

	// Draft quotes cannot be approved or rejected
	_, err := svc.Approve(ctx, quote.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	_, err = svc.Reject(ctx, quote.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = svc.Send(ctx, quote.ID)
	require.NoError(t, err)

	// Sent quotes cannot be sent again
	_, err = svc.Send(ctx, quote.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = svc.Approve(ctx, quote.ID)
	require.NoError(t, err)

	// Approved quotes are terminal
	_, err = svc.Reject(ctx, quote.ID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestQuoteServiceSendRecordsActivity(t *testing.T) {
	db, svc := setupQuoteService(t)
	ctx := context.Background()

	quote := createDraftQuote(t, db, svc)
	_, err := svc.Send(ctx, quote.ID)
	require.NoError(t, err)

	activityRepo := repository.NewActivityRepository(db)
	activities, err := activityRepo.ListByProject(ctx, quote.ProjectID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, activities)
	assert.Equal(t, domain.ActivityQuoteSent, activities[0].Type)
}

func TestQuoteServiceNotFound(t *testing.T) {
	_, svc := setupQuoteService(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Send(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
