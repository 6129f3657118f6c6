package repository_test

import (
	"context"
	"testing"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/brushline/contractor-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupClientTestDB(t *testing.T) (*gorm.DB, *repository.ClientRepository) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})
	return db, repository.NewClientRepository(db)
}

func TestClientRepositoryCreateAndGet(t *testing.T) {
	_, repo := setupClientTestDB(t)
	ctx := context.Background()

	client := &domain.Client{
		Name:           "Oak Street Properties",
		Email:          "office@oakstreet.example",
		Phone:          "5550001111",
		Classification: domain.ClientClassificationCommercial,
		Type:           domain.ClientTypeClient,
	}
	require.NoError(t, repo.Create(ctx, client))
	require.NotEqual(t, uuid.Nil, client.ID)

	got, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oak Street Properties", got.Name)
	assert.Equal(t, domain.ClientClassificationCommercial, got.Classification)
}

func TestClientRepositoryGetByIDNotFound(t *testing.T) {
	_, repo := setupClientTestDB(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClientRepositoryUpdate(t *testing.T) {
	db, repo := setupClientTestDB(t)
	ctx := context.Background()

	client := testutil.CreateTestClient(t, db, "Before Update")
	client.Name = "After Update"
	client.Type = domain.ClientTypeProspect
	require.NoError(t, repo.Update(ctx, client))

	got, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "After Update", got.Name)
	assert.Equal(t, domain.ClientTypeProspect, got.Type)
}

func TestClientRepositoryDelete(t *testing.T) {
	db, repo := setupClientTestDB(t)
	ctx := context.Background()

	client := testutil.CreateTestClient(t, db, "To Delete")
	require.NoError(t, repo.Delete(ctx, client.ID))

	_, err := repo.GetByID(ctx, client.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClientRepositoryListFilters(t *testing.T) {
	db, repo := setupClientTestDB(t)
	ctx := context.Background()

	residential := testutil.CreateTestClient(t, db, "Maple Family Home")
	commercial := &domain.Client{
		Name:           "Harbor Offices",
		Email:          "harbor@example.com",
		Classification: domain.ClientClassificationCommercial,
		Type:           domain.ClientTypeProspect,
	}
	require.NoError(t, repo.Create(ctx, commercial))

	// Search is case insensitive over name and email
	clients, total, err := repo.List(ctx, 1, 50, "maple", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, clients, 1)
	assert.Equal(t, residential.ID, clients[0].ID)

	clients, total, err = repo.List(ctx, 1, 50, "", domain.ClientClassificationCommercial, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, clients, 1)
	assert.Equal(t, commercial.ID, clients[0].ID)

	clients, total, err = repo.List(ctx, 1, 50, "", "", domain.ClientTypeProspect)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, clients, 1)
	assert.Equal(t, commercial.ID, clients[0].ID)

	_, total, err = repo.List(ctx, 1, 50, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestClientRepositoryGetWithProjects(t *testing.T) {
	db, repo := setupClientTestDB(t)
	ctx := context.Background()

	client := testutil.CreateTestClient(t, db, "With Projects")
	testutil.CreateTestProject(t, db, client.ID, "Facade Repaint")
	testutil.CreateTestProject(t, db, client.ID, "Interior Touch Up")

	got, err := repo.GetWithProjects(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, got.Projects, 2)

	count, err := repo.GetProjectsCount(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
