package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/brushline/contractor-api/internal/repository"
	"github.com/brushline/contractor-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSequenceTestDB(t *testing.T) *repository.NumberSequenceRepository {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return repository.NewNumberSequenceRepository(db)
}

func TestGetNextNumberIncrements(t *testing.T) {
	repo := setupSequenceTestDB(t)
	ctx := context.Background()

	first, err := repo.GetNextNumber(ctx, "invoice", 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := repo.GetNextNumber(ctx, "invoice", 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, second)

	third, err := repo.GetNextNumber(ctx, "invoice", 2026)
	require.NoError(t, err)
	assert.Equal(t, 3, third)
}

func TestGetNextNumberIsolatedPerKindAndYear(t *testing.T) {
	repo := setupSequenceTestDB(t)
	ctx := context.Background()

	_, err := repo.GetNextNumber(ctx, "invoice", 2026)
	require.NoError(t, err)
	_, err = repo.GetNextNumber(ctx, "invoice", 2026)
	require.NoError(t, err)

	// A different kind starts its own counter
	po, err := repo.GetNextNumber(ctx, "purchase_order", 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, po)

	// A new year resets the counter for the same kind
	nextYear, err := repo.GetNextNumber(ctx, "invoice", 2027)
	require.NoError(t, err)
	assert.Equal(t, 1, nextYear)
}

func TestGetCurrentSequence(t *testing.T) {
	repo := setupSequenceTestDB(t)
	ctx := context.Background()

	current, err := repo.GetCurrentSequence(ctx, "invoice", 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, current)

	_, err = repo.GetNextNumber(ctx, "invoice", 2026)
	require.NoError(t, err)

	current, err = repo.GetCurrentSequence(ctx, "invoice", 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, current)
}

func TestSetSequenceNeverReduces(t *testing.T) {
	repo := setupSequenceTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSequence(ctx, "invoice", 2026, 40))

	// Lower values are ignored
	require.NoError(t, repo.SetSequence(ctx, "invoice", 2026, 10))

	current, err := repo.GetCurrentSequence(ctx, "invoice", 2026)
	require.NoError(t, err)
	assert.Equal(t, 40, current)

	next, err := repo.GetNextNumber(ctx, "invoice", 2026)
	require.NoError(t, err)
	assert.Equal(t, 41, next)
}

func TestGetNextNumberConcurrent(t *testing.T) {
	repo := setupSequenceTestDB(t)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := repo.GetNextNumber(ctx, "invoice", 2026)
			assert.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := map[int]bool{}
	for n := range results {
		assert.False(t, seen[n], "sequence number %d issued twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, workers)
}
