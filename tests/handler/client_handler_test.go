package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/http/handler"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/brushline/contractor-api/internal/service"
	"github.com/brushline/contractor-api/tests/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type listResult struct {
	Data     []domain.ClientDTO `json:"data"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

func setupClientHandler(t *testing.T) (*gorm.DB, http.Handler) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})

	logger := zap.NewNop()
	clientService := service.NewClientService(
		repository.NewClientRepository(db),
		repository.NewActivityRepository(db),
		logger,
	)
	h := handler.NewClientHandler(clientService, logger)

	r := chi.NewRouter()
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return db, r
}

func authedContext() context.Context {
	userCtx := &auth.UserContext{
		UserID:      uuid.New(),
		Username:    "tester",
		DisplayName: "Test User",
		Role:        domain.UserRoleAdmin,
	}
	return auth.WithUserContext(context.Background(), userCtx)
}

func TestClientHandlerCreate(t *testing.T) {
	_, router := setupClientHandler(t)

	body, err := json.Marshal(domain.CreateClientRequest{
		Name:           "Pine Valley Homes",
		Email:          "contact@pinevalley.example",
		Classification: domain.ClientClassificationResidential,
		Type:           domain.ClientTypeProspect,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
	req = req.WithContext(authedContext())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created domain.ClientDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Pine Valley Homes", created.Name)
	assert.Equal(t, domain.ClientTypeProspect, created.Type)
}

func TestClientHandlerCreateValidation(t *testing.T) {
	_, router := setupClientHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"email":"a@b.example"}`},
		{name: "bad email", body: `{"name":"X","email":"not-an-email"}`},
		{name: "bad classification", body: `{"name":"X","classification":"galactic"}`},
		{name: "malformed json", body: `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(tt.body))
			req = req.WithContext(authedContext())
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestClientHandlerListAndFilter(t *testing.T) {
	db, router := setupClientHandler(t)
	ctx := authedContext()

	testutil.CreateTestClient(t, db, "Alpha Painting")
	testutil.CreateTestClient(t, db, "Beta Builders")
	testutil.CreateTestClient(t, db, "Gamma Renovations")

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var result listResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 50, result.PageSize)

	req = httptest.NewRequest(http.MethodGet, "/clients?search=beta", nil)
	req = req.WithContext(ctx)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Beta Builders", result.Data[0].Name)

	req = httptest.NewRequest(http.MethodGet, "/clients?page=2&pageSize=2", nil)
	req = req.WithContext(ctx)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, int64(3), result.Total)
	assert.Len(t, result.Data, 1)
}

func TestClientHandlerGetByID(t *testing.T) {
	db, router := setupClientHandler(t)

	client := testutil.CreateTestClient(t, db, "Lookup Target")
	testutil.CreateTestProject(t, db, client.ID, "Hallway Repaint")

	req := httptest.NewRequest(http.MethodGet, "/clients/"+client.ID.String(), nil)
	req = req.WithContext(authedContext())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.ClientWithProjectsDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Lookup Target", got.Name)
	assert.Len(t, got.Projects, 1)
}

func TestClientHandlerGetByIDErrors(t *testing.T) {
	_, router := setupClientHandler(t)
	ctx := authedContext()

	req := httptest.NewRequest(http.MethodGet, "/clients/not-a-uuid", nil)
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/clients/"+uuid.NewString(), nil)
	req = req.WithContext(ctx)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestClientHandlerUpdate(t *testing.T) {
	db, router := setupClientHandler(t)

	client := testutil.CreateTestClient(t, db, "Old Name")

	body, err := json.Marshal(domain.UpdateClientRequest{
		Name:           "New Name",
		Classification: domain.ClientClassificationIndustrial,
		Type:           domain.ClientTypeClient,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/clients/"+client.ID.String(), bytes.NewReader(body))
	req = req.WithContext(authedContext())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated domain.ClientDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, domain.ClientClassificationIndustrial, updated.Classification)
}

func TestClientHandlerDelete(t *testing.T) {
	db, router := setupClientHandler(t)
	ctx := authedContext()

	client := testutil.CreateTestClient(t, db, "Goner")

	req := httptest.NewRequest(http.MethodDelete, "/clients/"+client.ID.String(), nil)
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/clients/"+client.ID.String(), nil)
	req = req.WithContext(ctx)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
