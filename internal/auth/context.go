package auth

import (
	"context"

	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	Username    string
	DisplayName string
	Role        domain.UserRole
	SessionID   string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.UserRole) bool {
	return u.Role == role
}

// IsAdmin checks if user is an administrator
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.UserRoleAdmin
}

// CanManage checks if user can manage business records
func (u *UserContext) CanManage() bool {
	return u.Role == domain.UserRoleAdmin || u.Role == domain.UserRoleManager
}
