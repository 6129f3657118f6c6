package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brushline/contractor-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOverdueMarker struct {
	calls  int
	marked int64
	err    error
	now    time.Time
}

func (f *fakeOverdueMarker) MarkOverdue(_ context.Context, now time.Time) (int64, error) {
	f.calls++
	f.now = now
	return f.marked, f.err
}

type fakeSessionPruner struct {
	calls   int
	deleted int64
	err     error
}

func (f *fakeSessionPruner) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	f.calls++
	return f.deleted, f.err
}

func TestInvoiceOverdueJobRun(t *testing.T) {
	marker := &fakeOverdueMarker{marked: 3}
	job := jobs.NewInvoiceOverdueJob(marker, zap.NewNop(), time.Minute)

	job.Run()

	assert.Equal(t, 1, marker.calls)
	assert.WithinDuration(t, time.Now().UTC(), marker.now, time.Minute)
}

func TestInvoiceOverdueJobSurvivesError(t *testing.T) {
	marker := &fakeOverdueMarker{err: errors.New("db down")}
	job := jobs.NewInvoiceOverdueJob(marker, zap.NewNop(), time.Minute)

	require.NotPanics(t, job.Run)
	assert.Equal(t, 1, marker.calls)
}

func TestSessionCleanupJobRun(t *testing.T) {
	pruner := &fakeSessionPruner{deleted: 2}
	job := jobs.NewSessionCleanupJob(pruner, zap.NewNop(), time.Minute)

	job.Run()
	assert.Equal(t, 1, pruner.calls)
}

func TestSessionCleanupJobSurvivesError(t *testing.T) {
	pruner := &fakeSessionPruner{err: errors.New("db down")}
	job := jobs.NewSessionCleanupJob(pruner, zap.NewNop(), time.Minute)

	require.NotPanics(t, job.Run)
	assert.Equal(t, 1, pruner.calls)
}

func TestSchedulerAddAndRemoveJobs(t *testing.T) {
	scheduler := jobs.NewScheduler(zap.NewNop())

	marker := &fakeOverdueMarker{}
	job := jobs.NewInvoiceOverdueJob(marker, zap.NewNop(), time.Minute)

	err := scheduler.AddJob(jobs.InvoiceOverdueJobName, "0 * * * *", job.Run)
	require.NoError(t, err)
	assert.Contains(t, scheduler.GetJobNames(), jobs.InvoiceOverdueJobName)

	// Duplicate names are rejected
	err = scheduler.AddJob(jobs.InvoiceOverdueJobName, "30 * * * *", job.Run)
	assert.Error(t, err)
	assert.Len(t, scheduler.GetJobNames(), 1)

	err = scheduler.AddJob("bad", "not a cron expression", job.Run)
	assert.Error(t, err)

	require.NoError(t, scheduler.RemoveJob(jobs.InvoiceOverdueJobName))
	assert.Empty(t, scheduler.GetJobNames())
	assert.Error(t, scheduler.RemoveJob(jobs.InvoiceOverdueJobName))

	scheduler.Start()
	ctx := scheduler.Stop()
	<-ctx.Done()
}
