package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/mapper"
	"github.com/brushline/contractor-api/internal/repository"
	"go.uber.org/zap"
)

// ReportService builds financial summaries from invoices and payments.
// The aggregation itself is done by pure functions over in-memory rows
// so the merge and grouping rules stay testable without a database.
type ReportService struct {
	invoiceRepo *repository.InvoiceRepository
	paymentRepo *repository.PaymentRepository
	logger      *zap.Logger
}

func NewReportService(
	invoiceRepo *repository.InvoiceRepository,
	paymentRepo *repository.PaymentRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// PaymentsSummary aggregates outgoing payments
func (s *ReportService) PaymentsSummary(ctx context.Context) (*domain.PaymentsSummaryDTO, error) {
	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	summary := BuildPaymentsSummary(payments, time.Now())
	return summary, nil
}

// InvoicesSummary aggregates invoicing totals
func (s *ReportService) InvoicesSummary(ctx context.Context) (*domain.InvoicesSummaryDTO, error) {
	invoices, err := s.invoiceRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	summary := BuildInvoicesSummary(invoices)
	return summary, nil
}

// FinancialSummary merges paid invoices (income) and payments (expenses)
// into one report
func (s *ReportService) FinancialSummary(ctx context.Context) (*domain.FinancialSummaryDTO, error) {
	invoices, err := s.invoiceRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	summary := BuildFinancialSummary(invoices, payments)
	return summary, nil
}

// BuildPaymentsSummary computes payment aggregates as of the given time
func BuildPaymentsSummary(payments []domain.Payment, now time.Time) *domain.PaymentsSummaryDTO {
	summary := &domain.PaymentsSummaryDTO{
		CountByStatus:   map[string]int{},
		ByRecipientType: map[string]float64{},
	}

	weekStart := now.AddDate(0, 0, -7)
	monthly := map[string]float64{}
	byType := map[string]float64{}

	for i := range payments {
		p := &payments[i]
		summary.CountByStatus[string(p.Status)]++

		switch p.Status {
		case domain.PaymentStatusCompleted:
			summary.TotalPaid += p.Amount
		case domain.PaymentStatusPending:
			summary.TotalPending += p.Amount
		default:
			continue
		}

		summary.ByRecipientType[string(p.RecipientType)] += p.Amount
		monthly[p.Date.Format("2006-01")] += p.Amount
		if p.PaymentType != "" {
			byType[p.PaymentType] += p.Amount
		}
		if p.Date.After(weekStart) {
			summary.PaymentsThisWeek++
		}
	}

	for month, amount := range monthly {
		summary.MonthlyTotals = append(summary.MonthlyTotals, domain.SeriesPointDTO{
			Date:    month,
			Expense: amount,
			Profit:  -amount,
		})
	}
	sort.Slice(summary.MonthlyTotals, func(i, j int) bool {
		return summary.MonthlyTotals[i].Date < summary.MonthlyTotals[j].Date
	})

	summary.TopPaymentTypes = toNameValues(byType)

	// Most recent first, capped at ten
	sorted := make([]domain.Payment, len(payments))
	copy(sorted, payments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}
	summary.RecentPayments = make([]domain.PaymentDTO, len(sorted))
	for i := range sorted {
		summary.RecentPayments[i] = mapper.ToPaymentDTO(&sorted[i])
	}

	return summary
}

// BuildInvoicesSummary computes invoicing aggregates
func BuildInvoicesSummary(invoices []domain.Invoice) *domain.InvoicesSummaryDTO {
	summary := &domain.InvoicesSummaryDTO{
		CountByStatus: map[string]int{},
	}

	paidCount := 0
	for i := range invoices {
		inv := &invoices[i]
		summary.CountByStatus[string(inv.Status)]++

		if inv.Status == domain.InvoiceStatusCancelled {
			continue
		}
		summary.TotalInvoiced += inv.TotalAmount

		switch inv.Status {
		case domain.InvoiceStatusPaid:
			summary.TotalPaid += inv.TotalAmount
			paidCount++
		case domain.InvoiceStatusOverdue:
			summary.TotalOverdue += inv.TotalAmount
			summary.TotalOutstanding += inv.TotalAmount
		case domain.InvoiceStatusSent:
			summary.TotalOutstanding += inv.TotalAmount
		}
	}

	if paidCount > 0 {
		summary.AveragePaidAmount = summary.TotalPaid / float64(paidCount)
	}

	return summary
}

// BuildFinancialSummary merges income and expense rows into a single
// date-keyed series. The series holds the union of all income and
// expense dates, sorted ascending; a date present on only one side
// carries zero on the other, and profit is income minus expense per
// date.
func BuildFinancialSummary(invoices []domain.Invoice, payments []domain.Payment) *domain.FinancialSummaryDTO {
	summary := &domain.FinancialSummaryDTO{}

	incomeByDate := map[string]float64{}
	incomeByClient := map[string]float64{}
	for i := range invoices {
		inv := &invoices[i]
		if inv.Status != domain.InvoiceStatusPaid {
			continue
		}
		date := incomeDate(inv)
		incomeByDate[date] += inv.TotalAmount
		summary.TotalIncome += inv.TotalAmount

		clientName := inv.ClientID.String()
		if inv.Client != nil {
			clientName = inv.Client.Name
		}
		incomeByClient[clientName] += inv.TotalAmount
	}

	expenseByDate := map[string]float64{}
	expenseByType := map[string]float64{}
	expenseByCategory := map[string]float64{}
	for i := range payments {
		p := &payments[i]
		if p.Status == domain.PaymentStatusCancelled {
			continue
		}
		date := p.Date.Format("2006-01-02")
		expenseByDate[date] += p.Amount
		summary.TotalExpenses += p.Amount

		expenseByCategory[recipientTypeLabel(p.RecipientType)] += p.Amount
		if p.PaymentType != "" {
			expenseByType[p.PaymentType] += p.Amount
		}
	}

	summary.NetProfit = summary.TotalIncome - summary.TotalExpenses
	summary.Series = mergeSeries(incomeByDate, expenseByDate)
	summary.ExpensesByType = toNameValues(expenseByType)
	summary.IncomeByClient = toNameValues(incomeByClient)
	summary.ExpenseByCategory = toNameValues(expenseByCategory)

	return summary
}

// recipientTypeLabel maps a payment recipient type to its display label.
func recipientTypeLabel(rt domain.PaymentRecipientType) string {
	switch rt {
	case domain.RecipientSubcontractor:
		return "Subcontractors"
	case domain.RecipientStaff:
		return "Staff"
	case domain.RecipientSupplier:
		return "Suppliers"
	default:
		return "Other"
	}
}

// incomeDate picks the date a paid invoice counts toward: paid date,
// then issue date, then creation time.
func incomeDate(inv *domain.Invoice) string {
	if inv.PaidDate != nil {
		return inv.PaidDate.Format("2006-01-02")
	}
	if inv.IssueDate != nil {
		return inv.IssueDate.Format("2006-01-02")
	}
	return inv.CreatedAt.Format("2006-01-02")
}

// mergeSeries unions the date keys of both maps into one ascending series
func mergeSeries(income, expense map[string]float64) []domain.SeriesPointDTO {
	dates := map[string]bool{}
	for d := range income {
		dates[d] = true
	}
	for d := range expense {
		dates[d] = true
	}

	keys := make([]string, 0, len(dates))
	for d := range dates {
		keys = append(keys, d)
	}
	sort.Strings(keys)

	series := make([]domain.SeriesPointDTO, len(keys))
	for i, d := range keys {
		in := income[d]
		out := expense[d]
		series[i] = domain.SeriesPointDTO{
			Date:    d,
			Income:  in,
			Expense: out,
			Profit:  in - out,
		}
	}
	return series
}

// toNameValues reshapes a label keyed map into sorted {name, value} pairs,
// largest value first with name as tiebreak
func toNameValues(m map[string]float64) []domain.NameValueDTO {
	out := make([]domain.NameValueDTO, 0, len(m))
	for name, value := range m {
		out = append(out, domain.NameValueDTO{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}
