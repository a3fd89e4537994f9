package handler

import (
	"net/http"

	"github.com/dtroode/studypartner-auth/internal/api/http/response"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type logoutAllResponse struct {
	Revoked int64 `json:"revoked"`
}

// Auth handles the /auth endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, contextManager: contextManager, logger: logger}
}

// Register handles POST /auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	profile, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	h.logger.Info("Auth handler: identity registered", "identity_id", profile.ID.String())
	response.OK(w, http.StatusCreated, "registration successful", profile)
}

// Login handles POST /auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password, clientMeta(r))
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, "login successful", session)
}

// Refresh handles POST /auth/refresh.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	pair, err := h.authService.Refresh(r.Context(), req.RefreshToken, clientMeta(r))
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, "token refreshed", pair)
}

// Logout handles POST /auth/logout. Unknown tokens are not an error.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, "logged out", nil)
}

// LogoutAll handles POST /auth/logout-all.
func (h *Auth) LogoutAll(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r, h.contextManager)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	revoked, err := h.authService.LogoutAll(r.Context(), principal.UserID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, "logged out from all sessions", logoutAllResponse{Revoked: revoked})
}

// Me handles GET /auth/me.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r, h.contextManager)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	profile, err := h.authService.GetIdentity(r.Context(), principal.UserID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, "", profile)
}

// ChangePassword handles PUT /auth/password.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r, h.contextManager)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	var req changePasswordRequest
	if err = response.Decode(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err = h.authService.ChangePassword(r.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.OK(w, http.StatusOK, "password changed", nil)
}
