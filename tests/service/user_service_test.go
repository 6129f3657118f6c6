package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/repository"
	"github.com/brushline/contractor-api/internal/service"
	"github.com/brushline/contractor-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T) (*gorm.DB, *service.UserService, *repository.SessionRepository) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestData(t, db)
	})

	sessionRepo := repository.NewSessionRepository(db)
	svc := service.NewUserService(
		repository.NewUserRepository(db),
		sessionRepo,
		auth.NewTokenIssuer("test-secret", time.Hour),
		&config.AuthConfig{JWTSecret: "test-secret", TokenTTLMinutes: 60, BcryptCost: 4},
		&config.SessionConfig{CookieName: "contractor_sid", TTLHours: 24},
		zap.NewNop(),
	)
	return db, svc, sessionRepo
}

func registerUser(t *testing.T, svc *service.UserService, username string) *domain.UserDTO {
	user, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Username: username,
		Password: "very-secret-1",
		Name:     "Test Painter",
		Role:     domain.UserRoleManager,
	})
	require.NoError(t, err)
	return user
}

func TestUserServiceRegister(t *testing.T) {
	_, svc, _ := setupUserService(t)

	user := registerUser(t, svc, "painter1")
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "painter1", user.Username)
	assert.Equal(t, domain.UserRoleManager, user.Role)
}

func TestUserServiceRegisterDuplicateUsername(t *testing.T) {
	_, svc, _ := setupUserService(t)

	registerUser(t, svc, "painter1")

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Username: "painter1",
		Password: "another-secret",
		Name:     "Impostor",
	})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestUserServiceRegisterDefaultsRole(t *testing.T) {
	_, svc, _ := setupUserService(t)

	user, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Username: "newhire",
		Password: "very-secret-1",
		Name:     "New Hire",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleStaff, user.Role)
}

func TestUserServiceLogin(t *testing.T) {
	_, svc, sessionRepo := setupUserService(t)
	ctx := context.Background()

	registered := registerUser(t, svc, "painter1")

	resp, sid, err := svc.Login(ctx, &domain.LoginRequest{
		Username: "painter1",
		Password: "very-secret-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	assert.Equal(t, registered.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	// Login persists a session usable for cookie auth
	session, err := sessionRepo.GetSession(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	// The issued token validates against the same secret
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	userCtx, err := issuer.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userCtx.UserID)
}

func TestUserServiceLoginBadCredentials(t *testing.T) {
	_, svc, _ := setupUserService(t)
	ctx := context.Background()

	registerUser(t, svc, "painter1")

	_, _, err := svc.Login(ctx, &domain.LoginRequest{Username: "painter1", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, &domain.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestUserServiceLogout(t *testing.T) {
	_, svc, sessionRepo := setupUserService(t)
	ctx := context.Background()

	registerUser(t, svc, "painter1")
	_, sid, err := svc.Login(ctx, &domain.LoginRequest{Username: "painter1", Password: "very-secret-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sid))

	_, err = sessionRepo.GetSession(ctx, sid)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Logging out with no session is a no-op
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestUserServiceCurrentUser(t *testing.T) {
	_, svc, _ := setupUserService(t)

	registered := registerUser(t, svc, "painter1")

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{UserID: registered.ID})
	user, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "painter1", user.Username)

	_, err = svc.CurrentUser(context.Background())
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	ctx = auth.WithUserContext(context.Background(), &auth.UserContext{UserID: uuid.New()})
	_, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
