package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/mapper"
	"github.com/brushline/contractor-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService handles registration, login and logout.
// A successful login creates a persisted session row and issues a bearer
// token; either credential authenticates subsequent requests.
type UserService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	tokens      *auth.TokenIssuer
	authCfg     *config.AuthConfig
	sessionCfg  *config.SessionConfig
	logger      *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	tokens *auth.TokenIssuer,
	authCfg *config.AuthConfig,
	sessionCfg *config.SessionConfig,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		authCfg:     authCfg,
		sessionCfg:  sessionCfg,
		logger:      logger,
	}
}

func (s *UserService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.UserDTO, error) {
	taken, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(req.Password, s.authCfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: req.Username,
		Password: hash,
		Name:     req.Name,
		Role:     req.Role,
	}
	if user.Role == "" {
		user.Role = domain.UserRoleStaff
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("username", user.Username))

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// Login verifies credentials, creates a session and issues a token.
// Returns the session ID for the cookie alongside the response body.
func (s *UserService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, "", auth.ErrInvalidCredentials
	}

	sid, err := generateSessionID()
	if err != nil {
		return nil, "", err
	}

	data, err := json.Marshal(map[string]interface{}{
		"username": user.Username,
		"name":     user.Name,
		"role":     user.Role,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode session data: %w", err)
	}

	session := &domain.Session{
		SID:       sid,
		UserID:    user.ID,
		Data:      string(data),
		ExpiresAt: time.Now().Add(s.sessionCfg.TTL()),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))

	return &domain.LoginResponse{
		User:  mapper.ToUserDTO(user),
		Token: token,
	}, sid, nil
}

// Logout removes the persisted session
func (s *UserService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, sid); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CurrentUser returns the profile of the authenticated user
func (s *UserService) CurrentUser(ctx context.Context) (*domain.UserDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func generateSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
