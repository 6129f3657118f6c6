package auth_test

import (
	"testing"
	"time"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Username:  "jdoe",
		Name:      "Jane Doe",
		Role:      domain.UserRoleManager,
	}
}

func TestTokenIssueAndValidate(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	user := testUser()

	token, err := issuer.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userCtx, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userCtx.UserID)
	assert.Equal(t, "jdoe", userCtx.Username)
	assert.Equal(t, "Jane Doe", userCtx.DisplayName)
	assert.Equal(t, domain.UserRoleManager, userCtx.Role)
}

func TestTokenValidateRejectsGarbage(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Validate("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = issuer.Validate("")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenValidateRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	other := auth.NewTokenIssuer("different-secret", time.Hour)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenValidateRejectsExpired(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUserContextRoles(t *testing.T) {
	admin := &auth.UserContext{Role: domain.UserRoleAdmin}
	manager := &auth.UserContext{Role: domain.UserRoleManager}
	staff := &auth.UserContext{Role: domain.UserRoleStaff}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanManage())
	assert.False(t, manager.IsAdmin())
	assert.True(t, manager.CanManage())
	assert.False(t, staff.CanManage())
	assert.True(t, staff.HasRole(domain.UserRoleStaff))
}
