package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionCleanupJobName is the name of the expired session cleanup job
const SessionCleanupJobName = "session_cleanup"

// SessionPruner deletes expired session rows.
type SessionPruner interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionCleanupJob periodically deletes sessions past their expiry.
type SessionCleanupJob struct {
	sessions SessionPruner
	logger   *zap.Logger
	timeout  time.Duration
}

// NewSessionCleanupJob creates a new session cleanup job.
func NewSessionCleanupJob(sessions SessionPruner, logger *zap.Logger, timeout time.Duration) *SessionCleanupJob {
	return &SessionCleanupJob{
		sessions: sessions,
		logger:   logger,
		timeout:  timeout,
	}
}

// Run executes the cleanup. Called by the scheduler according to the cron expression.
func (j *SessionCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	deleted, err := j.sessions.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("session cleanup failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if deleted > 0 {
		j.logger.Info("deleted expired sessions",
			zap.Int64("count", deleted),
			zap.Duration("duration", time.Since(start)))
	}
}
