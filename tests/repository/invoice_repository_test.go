package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/brushline/contractor-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInvoiceTestDB(t *testing.T) (*gorm.DB, *repository.InvoiceRepository) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db, repository.NewInvoiceRepository(db)
}

func createTestInvoice(t *testing.T, db *gorm.DB, repo *repository.InvoiceRepository, status domain.InvoiceStatus, dueDate *time.Time) *domain.Invoice {
	client := testutil.CreateTestClient(t, db, "Invoice Client "+testutil.UniqueSuffix())
	project := testutil.CreateTestProject(t, db, client.ID, "Invoice Project")

	invoice := &domain.Invoice{
		ProjectID:     project.ID,
		ClientID:      client.ID,
		InvoiceNumber: fmt.Sprintf("INV-2026-%s", testutil.UniqueSuffix()),
		Amount:        1000,
		Tax:           250,
		TotalAmount:   1250,
		Status:        status,
		DueDate:       dueDate,
		Items:         `[]`,
	}
	require.NoError(t, repo.Create(context.Background(), invoice))
	return invoice
}

func TestInvoiceRepositoryCreateAndGet(t *testing.T) {
	db, repo := setupInvoiceTestDB(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, db, repo, domain.InvoiceStatusDraft, nil)

	got, err := repo.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.InvoiceNumber, got.InvoiceNumber)
	assert.Equal(t, 1250.0, got.TotalAmount)
	require.NotNil(t, got.Client)

	byNumber, err := repo.GetByNumber(ctx, invoice.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, byNumber.ID)
}

func TestInvoiceRepositoryNumberExists(t *testing.T) {
	db, repo := setupInvoiceTestDB(t)
	ctx := context.Background()

	invoice := createTestInvoice(t, db, repo, domain.InvoiceStatusDraft, nil)

	exists, err := repo.NumberExists(ctx, invoice.InvoiceNumber)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.NumberExists(ctx, "INV-0000-NOPE")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInvoiceRepositoryMarkOverdue(t *testing.T) {
	db, repo := setupInvoiceTestDB(t)
	ctx := context.Background()
	now := time.Now()

	pastDue := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 10)

	sentPastDue := createTestInvoice(t, db, repo, domain.InvoiceStatusSent, &pastDue)
	sentFuture := createTestInvoice(t, db, repo, domain.InvoiceStatusSent, &future)
	draftPastDue := createTestInvoice(t, db, repo, domain.InvoiceStatusDraft, &pastDue)
	sentNoDue := createTestInvoice(t, db, repo, domain.InvoiceStatusSent, nil)

	count, err := repo.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByID(ctx, sentPastDue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusOverdue, got.Status)

	// Only sent invoices past their due date are touched
	for _, untouched := range []*domain.Invoice{sentFuture, sentNoDue} {
		got, err = repo.GetByID(ctx, untouched.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusSent, got.Status)
	}
	got, err = repo.GetByID(ctx, draftPastDue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, got.Status)

	// A second sweep finds nothing left to flip
	count, err = repo.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestInvoiceRepositoryListByStatus(t *testing.T) {
	db, repo := setupInvoiceTestDB(t)
	ctx := context.Background()

	createTestInvoice(t, db, repo, domain.InvoiceStatusDraft, nil)
	paid := createTestInvoice(t, db, repo, domain.InvoiceStatusPaid, nil)

	invoices, total, err := repo.List(ctx, 1, 50, domain.InvoiceStatusPaid, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, invoices, 1)
	assert.Equal(t, paid.ID, invoices[0].ID)
}
