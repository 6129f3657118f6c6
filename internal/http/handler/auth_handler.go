package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brushline/contractor-api/internal/auth"
	"github.com/brushline/contractor-api/internal/config"
	"github.com/brushline/contractor-api/internal/domain"
	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
	sessionCfg  *config.SessionConfig
	logger      *zap.Logger
}

func NewAuthHandler(userService *service.UserService, sessionCfg *config.SessionConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessionCfg:  sessionCfg,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register user
// @Description Create a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.RegisterRequest true "Registration data"
// @Success 201 {object} domain.UserDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Authenticate with username and password. Sets the session cookie and returns a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, sid, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCfg.CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   h.sessionCfg.TTLHours * 3600,
		HttpOnly: true,
		Secure:   h.sessionCfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, resp)
}

// Logout godoc
// @Summary Log out
// @Description Delete the current session and clear the session cookie
// @Tags Auth
// @Produce json
// @Success 204
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if ok && userCtx.SessionID != "" {
		if err := h.userService.Logout(r.Context(), userCtx.SessionID); err != nil {
			h.logger.Warn("failed to delete session", zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.sessionCfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusNoContent, nil)
}

// Me godoc
// @Summary Current user
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.CurrentUser(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
