package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionStore struct {
	sessions map[string]*domain.Session
}

func (f *fakeSessionStore) GetSession(_ context.Context, sid string) (*domain.Session, error) {
	s, ok := f.sessions[sid]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func newTestMiddleware(issuer *auth.TokenIssuer, store auth.SessionStore) *auth.Middleware {
	cfg := &config.Config{
		Session: config.SessionConfig{CookieName: "contractor_sid"},
	}
	return auth.NewMiddleware(cfg, issuer, store, zap.NewNop())
}

func echoUserHandler(t *testing.T, captured **auth.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		*captured = userCtx
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateWithSessionCookie(t *testing.T) {
	userID := uuid.New()
	store := &fakeSessionStore{sessions: map[string]*domain.Session{
		"valid-sid": {
			SID:       "valid-sid",
			UserID:    userID,
			Data:      `{"username":"jdoe","name":"Jane Doe","role":"admin"}`,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}
	mw := newTestMiddleware(auth.NewTokenIssuer("secret", time.Hour), store)

	var captured *auth.UserContext
	handler := mw.Authenticate(echoUserHandler(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.AddCookie(&http.Cookie{Name: "contractor_sid", Value: "valid-sid"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.UserID)
	assert.Equal(t, "jdoe", captured.Username)
	assert.Equal(t, domain.UserRoleAdmin, captured.Role)
	assert.Equal(t, "valid-sid", captured.SessionID)
}

func TestAuthenticateExpiredSessionFallsThrough(t *testing.T) {
	store := &fakeSessionStore{sessions: map[string]*domain.Session{
		"expired-sid": {
			SID:       "expired-sid",
			UserID:    uuid.New(),
			Data:      `{"username":"jdoe","role":"staff"}`,
			ExpiresAt: time.Now().Add(-time.Minute),
		},
	}}
	mw := newTestMiddleware(auth.NewTokenIssuer("secret", time.Hour), store)

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.AddCookie(&http.Cookie{Name: "contractor_sid", Value: "expired-sid"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateWithBearerToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	mw := newTestMiddleware(issuer, &fakeSessionStore{sessions: map[string]*domain.Session{}})

	user := &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Username:  "api-client",
		Name:      "API Client",
		Role:      domain.UserRoleManager,
	}
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	var captured *auth.UserContext
	handler := mw.Authenticate(echoUserHandler(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, user.ID, captured.UserID)
	assert.Equal(t, "api-client", captured.Username)
}

func TestAuthenticateRejectsMissingCredentials(t *testing.T) {
	mw := newTestMiddleware(auth.NewTokenIssuer("secret", time.Hour), &fakeSessionStore{sessions: map[string]*domain.Session{}})

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	mw := newTestMiddleware(auth.NewTokenIssuer("secret", time.Hour), &fakeSessionStore{sessions: map[string]*domain.Session{}})

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	mw := newTestMiddleware(auth.NewTokenIssuer("secret", time.Hour), &fakeSessionStore{sessions: map[string]*domain.Session{}})
	protected := mw.RequireRole(domain.UserRoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		userCtx  *auth.UserContext
		wantCode int
	}{
		{name: "admin allowed", userCtx: &auth.UserContext{Role: domain.UserRoleAdmin}, wantCode: http.StatusOK},
		{name: "staff forbidden", userCtx: &auth.UserContext{Role: domain.UserRoleStaff}, wantCode: http.StatusForbidden},
		{name: "unauthenticated", userCtx: nil, wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/clients/123", nil)
			if tt.userCtx != nil {
				req = req.WithContext(auth.WithUserContext(req.Context(), tt.userCtx))
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
