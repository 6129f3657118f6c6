package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// InvoiceOverdueJobName is the name of the overdue invoice sweep job
const InvoiceOverdueJobName = "invoice_overdue"

// OverdueMarker flips sent invoices past their due date to overdue.
// The interface keeps the job decoupled from the repository package.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// InvoiceOverdueJob periodically sweeps sent invoices whose due date has passed.
type InvoiceOverdueJob struct {
	invoices OverdueMarker
	logger   *zap.Logger
	timeout  time.Duration
}

// NewInvoiceOverdueJob creates a new overdue invoice sweep job.
func NewInvoiceOverdueJob(invoices OverdueMarker, logger *zap.Logger, timeout time.Duration) *InvoiceOverdueJob {
	return &InvoiceOverdueJob{
		invoices: invoices,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run executes the sweep. Called by the scheduler according to the cron expression.
func (j *InvoiceOverdueJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	marked, err := j.invoices.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("overdue invoice sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if marked > 0 {
		j.logger.Info("marked invoices overdue",
			zap.Int64("count", marked),
			zap.Duration("duration", time.Since(start)))
	}
}
