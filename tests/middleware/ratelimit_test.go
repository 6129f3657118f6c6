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

func createTestRateLimiter(cfg *config.RateLimitConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg, zap.NewNop())
}

func okHandler(counter *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*counter++
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterDisabled(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           false,
		RequestsPerMinute: 5,
	}
	rl := createTestRateLimiter(cfg)

	handlerCalled := 0
	handler := rl.LimitByIP(okHandler(&handlerCalled))

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 50, handlerCalled)
}

func TestRateLimiterEnforcesLimit(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 3,
	}
	rl := createTestRateLimiter(cfg)

	handlerCalled := 0
	handler := rl.LimitByIP(okHandler(&handlerCalled))

	statuses := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, 3, handlerCalled)
	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[2])
	assert.Equal(t, http.StatusTooManyRequests, statuses[3])
	assert.Equal(t, http.StatusTooManyRequests, statuses[4])
}

func TestRateLimiterWhitelistedIP(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 2,
		WhitelistIPs:      []string{"127.0.0.1"},
	}
	rl := createTestRateLimiter(cfg)

	handlerCalled := 0
	handler := rl.LimitByIP(okHandler(&handlerCalled))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 10, handlerCalled)
}

func TestRateLimiterWhitelistedPath(t *testing.T) {
	cfg := &config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 2,
		WhitelistPaths:    []string{"/health"},
	}
	rl := createTestRateLimiter(cfg)

	handlerCalled := 0
	handler := rl.LimitByIP(okHandler(&handlerCalled))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.2:12345"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 10, handlerCalled)
}
