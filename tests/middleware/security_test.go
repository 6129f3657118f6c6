package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
)

func serveWithSecurityHeaders(cfg *config.SecurityConfig) *httptest.ResponseRecorder {
	handler := middleware.SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestSecurityHeadersAllEnabled(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		ContentSecurityPolicy: "default-src 'self'",
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		XSSProtection:         "1; mode=block",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "geolocation=()",
	}

	rr := serveWithSecurityHeaders(cfg)

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", rr.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", rr.Header().Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=()", rr.Header().Get("Permissions-Policy"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", rr.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeadersHSTSPreload(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            600,
		HSTSIncludeSubdomains: true,
		HSTSPreload:           true,
	}

	rr := serveWithSecurityHeaders(cfg)
	assert.Equal(t, "max-age=600; includeSubDomains; preload", rr.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeadersAllDisabled(t *testing.T) {
	rr := serveWithSecurityHeaders(&config.SecurityConfig{})

	assert.Empty(t, rr.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rr.Header().Get("X-Frame-Options"))
	assert.Empty(t, rr.Header().Get("Content-Security-Policy"))
	assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
}
