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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func setupPurchaseOrderService(t *testing.T) (*gorm.DB, *service.PurchaseOrderService) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	svc := service.NewPurchaseOrderService(
		repository.NewPurchaseOrderRepository(db),
		repository.NewSupplierRepository(db),
		repository.NewNumberSequenceRepository(db),
		repository.NewActivityRepository(db),
		zap.NewNop(),
	)
	return db, svc
}

func createTestSupplier(t *testing.T, db *gorm.DB) *domain.Supplier {
	supplier := &domain.Supplier{
		Name:     "Paint Depot " + testutil.UniqueSuffix(),
		Category: "paint",
		Status:   domain.SupplierActive,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(supplier).Error)
	return supplier
}

func money(s string) domain.Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return domain.NewMoney(d)
}

func TestPurchaseOrderServiceCreate(t *testing.T) {
	db, svc := setupPurchaseOrderService(t)
	ctx := context.Background()

	supplier := createTestSupplier(t, db)

	created, err := svc.Create(ctx, &domain.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items: []domain.CreatePurchaseOrderItemRequest{
			{Description: "White primer 10L", Quantity: money("3"), UnitPrice: money("49.90")},
			{Description: "Rollers", Quantity: money("12"), UnitPrice: money("7.25")},
		},
	})
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("PO-%d-001", year), created.OrderNumber)
	assert.Equal(t, domain.PurchaseOrderStatusDraft, created.Status)
	require.Len(t, created.Items, 2)

	// Line totals are quantity * unit price in exact decimal arithmetic
	assert.Equal(t, "149.70", created.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "87.00", created.Items[1].TotalPrice.StringFixed(2))
	assert.Equal(t, "236.70", created.TotalAmount.StringFixed(2))
}

func TestPurchaseOrderServiceCreateUnknownSupplier(t *testing.T) {
	_, svc := setupPurchaseOrderService(t)

	_, err := svc.Create(context.Background(), &domain.CreatePurchaseOrderRequest{
		SupplierID: uuid.New(),
		Items: []domain.CreatePurchaseOrderItemRequest{
			{Description: "Primer", Quantity: money("1"), UnitPrice: money("10")},
		},
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPurchaseOrderServiceUpdateReplacesItems(t *testing.T) {
	db, svc := setupPurchaseOrderService(t)
	ctx := context.Background()

	supplier := createTestSupplier(t, db)
	created, err := svc.Create(ctx, &domain.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items: []domain.CreatePurchaseOrderItemRequest{
			{Description: "Primer", Quantity: money("2"), UnitPrice: money("50")},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &domain.UpdatePurchaseOrderRequest{
		Status: domain.PurchaseOrderStatusOrdered,
		Items: []domain.CreatePurchaseOrderItemRequest{
			{Description: "Topcoat", Quantity: money("4"), UnitPrice: money("60")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PurchaseOrderStatusOrdered, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Topcoat", updated.Items[0].Description)
	assert.Equal(t, "240.00", updated.TotalAmount.StringFixed(2))
}

func TestPurchaseOrderServiceDeleteCascadesItems(t *testing.T) {
	db, svc := setupPurchaseOrderService(t)
	ctx := context.Background()

	supplier := createTestSupplier(t, db)
	created, err := svc.Create(ctx, &domain.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items: []domain.CreatePurchaseOrderItemRequest{
			{Description: "Primer", Quantity: money("2"), UnitPrice: money("50")},
			{Description: "Tape", Quantity: money("10"), UnitPrice: money("3")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&domain.PurchaseOrderItem{}).
		Where("purchase_order_id = ?", created.ID).
		Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
}

func TestPurchaseOrderServiceDeleteNotFound(t *testing.T) {
	_, svc := setupPurchaseOrderService(t)
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
