package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

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

func setupInvoiceService(t *testing.T) (*gorm.DB, *service.InvoiceService) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	svc := service.NewInvoiceService(
		repository.NewInvoiceRepository(db),
		repository.NewProjectRepository(db),
		repository.NewClientRepository(db),
		repository.NewNumberSequenceRepository(db),
		repository.NewActivityRepository(db),
		zap.NewNop(),
	)
	return db, svc
}

func invoiceFixtures(t *testing.T, db *gorm.DB) (*domain.Client, *domain.Project) {
	client := testutil.CreateTestClient(t, db, "Billing Client "+testutil.UniqueSuffix())
	project := testutil.CreateTestProject(t, db, client.ID, "Billable Project")
	return client, project
}

func TestInvoiceServiceCreateGeneratesNumber(t *testing.T) {
	db, svc := setupInvoiceService(t)
	ctx := context.Background()

	client, project := invoiceFixtures(t, db)

	first, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		ProjectID: project.ID,
		ClientID:  client.ID,
		Amount:    1000,
		Tax:       250,
		Items: []domain.InvoiceItem{
			{Description: "Interior walls", Quantity: 1, UnitPrice: 1000, Amount: 1000},
		},
	})
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("INV-%d-001", year), first.InvoiceNumber)
	assert.Equal(t, 1250.0, first.TotalAmount)
	assert.Equal(t, domain.InvoiceStatusDraft, first.Status)

	second, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		ProjectID: project.ID,
		ClientID:  client.ID,
		Amount:    500,
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV-%d-002", year), second.InvoiceNumber)
}

func TestInvoiceServiceCreateExplicitNumber(t *testing.T) {
	db, svc := setupInvoiceService(t)
	ctx := context.Background()

	client, project := invoiceFixtures(t, db)

	req := &domain.CreateInvoiceRequest{
		ProjectID:     project.ID,
		ClientID:      client.ID,
		InvoiceNumber: "INV-CUSTOM-7",
		Amount:        100,
	}
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "INV-CUSTOM-7", created.InvoiceNumber)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, service.ErrInvoiceNumberTaken)
}

func TestInvoiceServiceCreateUnknownReferences(t *testing.T) {
	db, svc := setupInvoiceService(t)
	ctx := context.Background()

	client, project := invoiceFixtures(t, db)

	_, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		ProjectID: uuid.New(),
		ClientID:  client.ID,
		Amount:    100,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Create(ctx, &domain.CreateInvoiceRequest{
		ProjectID: project.ID,
		ClientID:  uuid.New(),
		Amount:    100,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestInvoiceServiceMarkPaid(t *testing.T) {
	db, svc := setupInvoiceService(t)
	ctx := context.Background()

	client, project := invoiceFixtures(t, db)
	created, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		ProjectID: project.ID,
		ClientID:  client.ID,
		Amount:    1000,
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, created.ID, &domain.MarkInvoicePaidRequest{
		PaidDate:      domain.NewFlexDate(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, "2026-04-01", *paid.PaidDate)
	assert.Equal(t, "bank_transfer", paid.PaymentMethod)

	// Paying twice is a conflict
	_, err = svc.MarkPaid(ctx, created.ID, &domain.MarkInvoicePaidRequest{})
	assert.ErrorIs(t, err, service.ErrAlreadyPaid)
}

func TestInvoiceServiceMarkPaidDefaultsDate(t *testing.T) {
	db, svc := setupInvoiceService(t)
	ctx := context.Background()

	client, project := invoiceFixtures(t, db)
	created, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		ProjectID: project.ID,
		ClientID:  client.ID,
		Amount:    100,
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, created.ID, &domain.MarkInvoicePaidRequest{})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidDate)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), *paid.PaidDate)
}

func TestInvoiceServiceMarkPaidNotFound(t *testing.T) {
	_, svc := setupInvoiceService(t)

	_, err := svc.MarkPaid(context.Background(), uuid.New(), &domain.MarkInvoicePaidRequest{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
