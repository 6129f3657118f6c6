package service_test

import (
	"testing"
	"time"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestBuildPaymentsSummary(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	payments := []domain.Payment{
		{
			Amount:        1000,
			Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			RecipientType: domain.RecipientSubcontractor,
			PaymentType:   "subcontract",
			Status:        domain.PaymentStatusCompleted,
		},
		{
			Amount:        500,
			Date:          time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
			RecipientType: domain.RecipientSupplier,
			PaymentType:   "materials",
			Status:        domain.PaymentStatusCompleted,
		},
		{
			Amount:        200,
			Date:          time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			RecipientType: domain.RecipientStaff,
			PaymentType:   "labor",
			Status:        domain.PaymentStatusPending,
		},
		{
			Amount:        9999,
			Date:          time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
			RecipientType: domain.RecipientSupplier,
			PaymentType:   "materials",
			Status:        domain.PaymentStatusCancelled,
		},
	}

	summary := service.BuildPaymentsSummary(payments, now)
	require.NotNil(t, summary)

	assert.Equal(t, 1500.0, summary.TotalPaid)
	assert.Equal(t, 200.0, summary.TotalPending)

	assert.Equal(t, 2, summary.CountByStatus["completed"])
	assert.Equal(t, 1, summary.CountByStatus["pending"])
	assert.Equal(t, 1, summary.CountByStatus["cancelled"])

	// Cancelled payments do not contribute to amount aggregates
	assert.Equal(t, 500.0, summary.ByRecipientType["supplier"])
	assert.Equal(t, 1000.0, summary.ByRecipientType["subcontractor"])
	assert.Equal(t, 200.0, summary.ByRecipientType["staff"])

	require.Len(t, summary.MonthlyTotals, 2)
	assert.Equal(t, "2026-02", summary.MonthlyTotals[0].Date)
	assert.Equal(t, 500.0, summary.MonthlyTotals[0].Expense)
	assert.Equal(t, "2026-03", summary.MonthlyTotals[1].Date)
	assert.Equal(t, 1200.0, summary.MonthlyTotals[1].Expense)

	require.Len(t, summary.TopPaymentTypes, 3)
	assert.Equal(t, "subcontract", summary.TopPaymentTypes[0].Name)
	assert.Equal(t, 1000.0, summary.TopPaymentTypes[0].Value)

	// Payments dated 2026-03-12 and 2026-03-14 fall inside the last week
	assert.Equal(t, 2, summary.PaymentsThisWeek)

	require.Len(t, summary.RecentPayments, 4)
	assert.Equal(t, "2026-03-14", summary.RecentPayments[0].Date)
}

func TestBuildPaymentsSummaryRecentPaymentsCapped(t *testing.T) {
	now := time.Now()
	payments := make([]domain.Payment, 15)
	for i := range payments {
		payments[i] = domain.Payment{
			Amount:        10,
			Date:          now.AddDate(0, 0, -i),
			RecipientType: domain.RecipientStaff,
			Status:        domain.PaymentStatusCompleted,
		}
	}

	summary := service.BuildPaymentsSummary(payments, now)
	assert.Len(t, summary.RecentPayments, 10)
}

func TestBuildPaymentsSummaryEmpty(t *testing.T) {
	summary := service.BuildPaymentsSummary(nil, time.Now())
	require.NotNil(t, summary)
	assert.Zero(t, summary.TotalPaid)
	assert.Zero(t, summary.TotalPending)
	assert.Empty(t, summary.CountByStatus)
	assert.Empty(t, summary.MonthlyTotals)
	assert.Empty(t, summary.RecentPayments)
}

func TestBuildInvoicesSummary(t *testing.T) {
	invoices := []domain.Invoice{
		{TotalAmount: 1000, Status: domain.InvoiceStatusPaid},
		{TotalAmount: 3000, Status: domain.InvoiceStatusPaid},
		{TotalAmount: 500, Status: domain.InvoiceStatusSent},
		{TotalAmount: 700, Status: domain.InvoiceStatusOverdue},
		{TotalAmount: 250, Status: domain.InvoiceStatusDraft},
		{TotalAmount: 9000, Status: domain.InvoiceStatusCancelled},
	}

	summary := service.BuildInvoicesSummary(invoices)
	require.NotNil(t, summary)

	// Cancelled invoices are excluded from the invoiced total
	assert.Equal(t, 5450.0, summary.TotalInvoiced)
	assert.Equal(t, 4000.0, summary.TotalPaid)
	assert.Equal(t, 700.0, summary.TotalOverdue)
	assert.Equal(t, 1200.0, summary.TotalOutstanding)
	assert.Equal(t, 2000.0, summary.AveragePaidAmount)

	assert.Equal(t, 2, summary.CountByStatus["paid"])
	assert.Equal(t, 1, summary.CountByStatus["sent"])
	assert.Equal(t, 1, summary.CountByStatus["overdue"])
	assert.Equal(t, 1, summary.CountByStatus["draft"])
	assert.Equal(t, 1, summary.CountByStatus["cancelled"])
}

func TestBuildInvoicesSummaryNoPaid(t *testing.T) {
	invoices := []domain.Invoice{
		{TotalAmount: 500, Status: domain.InvoiceStatusSent},
	}

	summary := service.BuildInvoicesSummary(invoices)
	assert.Zero(t, summary.AveragePaidAmount)
	assert.Equal(t, 500.0, summary.TotalOutstanding)
}

func TestBuildFinancialSummarySeries(t *testing.T) {
	client := &domain.Client{Name: "Nordic Homes"}
	invoices := []domain.Invoice{
		{
			TotalAmount: 2000,
			Status:      domain.InvoiceStatusPaid,
			PaidDate:    datePtr(2026, time.March, 10),
			Client:      client,
		},
		{
			TotalAmount: 1000,
			Status:      domain.InvoiceStatusPaid,
			PaidDate:    datePtr(2026, time.March, 20),
			Client:      client,
		},
		// Unpaid invoices are not income
		{
			TotalAmount: 5000,
			Status:      domain.InvoiceStatusSent,
			IssueDate:   datePtr(2026, time.March, 11),
		},
	}
	payments := []domain.Payment{
		{
			Amount:        600,
			Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			RecipientType: domain.RecipientSupplier,
			PaymentType:   "materials",
			Status:        domain.PaymentStatusCompleted,
		},
		{
			Amount:        400,
			Date:          time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			RecipientType: domain.RecipientStaff,
			PaymentType:   "labor",
			Status:        domain.PaymentStatusPending,
		},
		{
			Amount:        777,
			Date:          time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			RecipientType: domain.RecipientStaff,
			Status:        domain.PaymentStatusCancelled,
		},
	}

	summary := service.BuildFinancialSummary(invoices, payments)
	require.NotNil(t, summary)

	assert.Equal(t, 3000.0, summary.TotalIncome)
	assert.Equal(t, 1000.0, summary.TotalExpenses)
	assert.Equal(t, 2000.0, summary.NetProfit)

	// Union of income and expense dates, ascending, zero filled
	require.Len(t, summary.Series, 3)

	assert.Equal(t, "2026-03-10", summary.Series[0].Date)
	assert.Equal(t, 2000.0, summary.Series[0].Income)
	assert.Equal(t, 600.0, summary.Series[0].Expense)
	assert.Equal(t, 1400.0, summary.Series[0].Profit)

	assert.Equal(t, "2026-03-15", summary.Series[1].Date)
	assert.Equal(t, 0.0, summary.Series[1].Income)
	assert.Equal(t, 400.0, summary.Series[1].Expense)
	assert.Equal(t, -400.0, summary.Series[1].Profit)

	assert.Equal(t, "2026-03-20", summary.Series[2].Date)
	assert.Equal(t, 1000.0, summary.Series[2].Income)
	assert.Equal(t, 0.0, summary.Series[2].Expense)
	assert.Equal(t, 1000.0, summary.Series[2].Profit)

	require.Len(t, summary.IncomeByClient, 1)
	assert.Equal(t, "Nordic Homes", summary.IncomeByClient[0].Name)
	assert.Equal(t, 3000.0, summary.IncomeByClient[0].Value)

	require.Len(t, summary.ExpensesByType, 2)
	assert.Equal(t, "materials", summary.ExpensesByType[0].Name)

	require.Len(t, summary.ExpenseByCategory, 2)
	assert.Equal(t, "Suppliers", summary.ExpenseByCategory[0].Name)
	assert.Equal(t, 600.0, summary.ExpenseByCategory[0].Value)
}

func TestBuildFinancialSummaryRecipientLabels(t *testing.T) {
	payments := []domain.Payment{
		{Amount: 100, Status: domain.PaymentStatusCompleted, RecipientType: domain.RecipientSubcontractor, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Amount: 200, Status: domain.PaymentStatusCompleted, RecipientType: domain.RecipientStaff, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Amount: 300, Status: domain.PaymentStatusCompleted, RecipientType: domain.RecipientSupplier, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	summary := service.BuildFinancialSummary(nil, payments)

	labels := make(map[string]float64, len(summary.ExpenseByCategory))
	for _, nv := range summary.ExpenseByCategory {
		labels[nv.Name] = nv.Value
	}
	assert.Equal(t, map[string]float64{
		"Subcontractors": 100,
		"Staff":          200,
		"Suppliers":      300,
	}, labels)
}

func TestBuildFinancialSummaryIncomeDateFallback(t *testing.T) {
	created := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		invoice  domain.Invoice
		wantDate string
	}{
		{
			name: "paid date wins",
			invoice: domain.Invoice{
				TotalAmount: 100,
				Status:      domain.InvoiceStatusPaid,
				PaidDate:    datePtr(2026, time.February, 1),
				IssueDate:   datePtr(2026, time.January, 15),
			},
			wantDate: "2026-02-01",
		},
		{
			name: "issue date second",
			invoice: domain.Invoice{
				TotalAmount: 100,
				Status:      domain.InvoiceStatusPaid,
				IssueDate:   datePtr(2026, time.January, 15),
			},
			wantDate: "2026-01-15",
		},
		{
			name: "created at last",
			invoice: domain.Invoice{
				BaseModel:   domain.BaseModel{CreatedAt: created},
				TotalAmount: 100,
				Status:      domain.InvoiceStatusPaid,
			},
			wantDate: "2026-01-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := service.BuildFinancialSummary([]domain.Invoice{tt.invoice}, nil)
			require.Len(t, summary.Series, 1)
			assert.Equal(t, tt.wantDate, summary.Series[0].Date)
			assert.Equal(t, 100.0, summary.Series[0].Income)
		})
	}
}

func TestBuildFinancialSummaryClientFallsBackToID(t *testing.T) {
	clientID := uuid.New()
	invoices := []domain.Invoice{
		{
			ClientID:    clientID,
			TotalAmount: 100,
			Status:      domain.InvoiceStatusPaid,
			PaidDate:    datePtr(2026, time.April, 1),
		},
	}

	summary := service.BuildFinancialSummary(invoices, nil)
	require.Len(t, summary.IncomeByClient, 1)
	assert.Equal(t, clientID.String(), summary.IncomeByClient[0].Name)
}

func TestBuildFinancialSummaryBreakdownOrdering(t *testing.T) {
	payments := []domain.Payment{
		{Amount: 100, Date: time.Now(), RecipientType: domain.RecipientStaff, PaymentType: "labor", Status: domain.PaymentStatusCompleted},
		{Amount: 100, Date: time.Now(), RecipientType: domain.RecipientSupplier, PaymentType: "equipment", Status: domain.PaymentStatusCompleted},
		{Amount: 300, Date: time.Now(), RecipientType: domain.RecipientSubcontractor, PaymentType: "subcontract", Status: domain.PaymentStatusCompleted},
	}

	summary := service.BuildFinancialSummary(nil, payments)

	// Largest value first, name ascending breaks ties
	require.Len(t, summary.ExpensesByType, 3)
	assert.Equal(t, "subcontract", summary.ExpensesByType[0].Name)
	assert.Equal(t, "equipment", summary.ExpensesByType[1].Name)
	assert.Equal(t, "labor", summary.ExpensesByType[2].Name)
}
