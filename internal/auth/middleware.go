package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/domain"
	"go.uber.org/zap"
)

// SessionStore looks up persisted sessions for cookie authentication
type SessionStore interface {
	GetSession(ctx context.Context, sid string) (*domain.Session, error)
}

// Middleware handles authentication for HTTP requests
type Middleware struct {
	tokens     *TokenIssuer
	sessions   SessionStore
	cookieName string
	logger     *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.Config, tokens *TokenIssuer, sessions SessionStore, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens:     tokens,
		sessions:   sessions,
		cookieName: cfg.Session.CookieName,
		logger:     logger,
	}
}

// sessionData mirrors the JSON blob stored in the session row
type sessionData struct {
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Role     domain.UserRole `json:"role"`
}

// Authenticate accepts either a session cookie or a Bearer token.
// The cookie is checked first since browser clients are the common case.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
			if userCtx := m.authenticateSession(r.Context(), cookie.Value); userCtx != nil {
				m.logger.Debug("request authenticated",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("auth_type", "session"),
					zap.String("user_id", userCtx.UserID.String()),
					zap.Duration("auth_duration", time.Since(start)),
				)
				next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
				return
			}
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized: missing credentials", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "Unauthorized: invalid authorization header format", http.StatusUnauthorized)
			return
		}

		userCtx, err := m.tokens.Validate(parts[1])
		if err != nil {
			m.logger.Warn("invalid bearer token",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("auth_type", "bearer"),
			zap.String("user_id", userCtx.UserID.String()),
			zap.Duration("auth_duration", time.Since(start)),
		)
		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
	})
}

// RequireRole rejects authenticated users below the given role
func (m *Middleware) RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[domain.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !allowed[userCtx.Role] {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) authenticateSession(ctx context.Context, sid string) *UserContext {
	session, err := m.sessions.GetSession(ctx, sid)
	if err != nil || session == nil {
		return nil
	}
	if time.Now().After(session.ExpiresAt) {
		return nil
	}

	var data sessionData
	if err := json.Unmarshal([]byte(session.Data), &data); err != nil {
		m.logger.Warn("malformed session data", zap.String("sid", sid), zap.Error(err))
		return nil
	}

	return &UserContext{
		UserID:      session.UserID,
		Username:    data.Username,
		DisplayName: data.Name,
		Role:        data.Role,
		SessionID:   session.SID,
	}
}
