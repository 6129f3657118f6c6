package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func corsHandler(cfg *config.CORSConfig, environment string) http.Handler {
	return middleware.CORS(cfg, environment, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowedOrigin(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins:   []string{"https://app.brushline.io"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
	handler := corsHandler(cfg, "production")

	req := httptest.NewRequest(http.MethodOptions, "/api/clients", nil)
	req.Header.Set("Origin", "https://app.brushline.io")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.brushline.io", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://app.brushline.io"},
		AllowedMethods: []string{"GET", "POST"},
	}
	handler := corsHandler(cfg, "production")

	req := httptest.NewRequest(http.MethodOptions, "/api/clients", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSNoOriginsConfiguredInProduction(t *testing.T) {
	handler := corsHandler(&config.CORSConfig{AllowedMethods: []string{"GET"}}, "production")

	req := httptest.NewRequest(http.MethodOptions, "/api/clients", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSDevelopmentAllowsAll(t *testing.T) {
	handler := corsHandler(&config.CORSConfig{AllowedMethods: []string{"GET"}}, "development")

	req := httptest.NewRequest(http.MethodOptions, "/api/clients", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}
