package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/brushline/contractor-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSessionTestDB(t *testing.T) *repository.SessionRepository {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return repository.NewSessionRepository(db)
}

func createTestSession(t *testing.T, repo *repository.SessionRepository, sid string, expiresAt time.Time) *domain.Session {
	session := &domain.Session{
		SID:       sid,
		UserID:    uuid.New(),
		Data:      `{"username":"jdoe","role":"staff"}`,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, repo.Create(context.Background(), session))
	return session
}

func TestSessionRepositoryCreateAndGet(t *testing.T) {
	repo := setupSessionTestDB(t)
	ctx := context.Background()

	created := createTestSession(t, repo, "sid-"+testutil.UniqueSuffix(), time.Now().Add(time.Hour))

	got, err := repo.GetSession(ctx, created.SID)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, got.UserID)
	assert.JSONEq(t, created.Data, got.Data)
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := setupSessionTestDB(t)
	ctx := context.Background()

	created := createTestSession(t, repo, "sid-"+testutil.UniqueSuffix(), time.Now().Add(time.Hour))

	require.NoError(t, repo.Delete(ctx, created.SID))

	_, err := repo.GetSession(ctx, created.SID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSessionRepositoryTouch(t *testing.T) {
	repo := setupSessionTestDB(t)
	ctx := context.Background()

	created := createTestSession(t, repo, "sid-"+testutil.UniqueSuffix(), time.Now().Add(time.Minute))

	newExpiry := time.Now().Add(24 * time.Hour)
	require.NoError(t, repo.Touch(ctx, created.SID, newExpiry))

	got, err := repo.GetSession(ctx, created.SID)
	require.NoError(t, err)
	assert.WithinDuration(t, newExpiry, got.ExpiresAt, time.Second)
}

func TestSessionRepositoryDeleteExpired(t *testing.T) {
	repo := setupSessionTestDB(t)
	ctx := context.Background()
	now := time.Now()

	expired1 := createTestSession(t, repo, "expired-1-"+testutil.UniqueSuffix(), now.Add(-time.Hour))
	expired2 := createTestSession(t, repo, "expired-2-"+testutil.UniqueSuffix(), now.Add(-time.Minute))
	live := createTestSession(t, repo, "live-"+testutil.UniqueSuffix(), now.Add(time.Hour))

	count, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = repo.GetSession(ctx, expired1.SID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetSession(ctx, expired2.SID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.GetSession(ctx, live.SID)
	require.NoError(t, err)
	assert.Equal(t, live.UserID, got.UserID)

	count, err = repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
