package handler

import (
	"net/http"

	"github.com/dtroode/studypartner-auth/internal/api/http/response"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

type assignRoleRequest struct {
	RoleID int64 `json:"roleId"`
}

type setStatusRequest struct {
	Status model.UserStatus `json:"status"`
}

// User handles the /users endpoints: role assignments and status
// administration.
type User struct {
	authService    AuthService
	roleService    RoleService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewUser(authService AuthService, roleService RoleService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		authService:    authService,
		roleService:    roleService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Roles handles GET /users/{id}/roles.
func (h *User) Roles(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	roles, err := h.roleService.UserRoles(r.Context(), userID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	response.OK(w, http.StatusOK, "", roles)
}

// AssignRole handles POST /users/{id}/roles.
func (h *User) AssignRole(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r, h.contextManager)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	userID, err := userIDParam(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	var req assignRoleRequest
	if err = response.Decode(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	assignment, err := h.roleService.Assign(r.Context(), principal.UserID, userID, req.RoleID)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	response.OK(w, http.StatusCreated, "role assigned", assignment)
}

// UnassignRole handles DELETE /users/{id}/roles/{roleId}.
func (h *User) UnassignRole(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r, h.contextManager)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	userID, err := userIDParam(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	roleID, err := roleIDParam(r, "roleId")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err = h.roleService.Unassign(r.Context(), principal.UserID, userID, roleID); err != nil {
		response.Error(w, h.logger, err)
		return
	}
	response.OK(w, http.StatusOK, "role removed", nil)
}

// SetStatus handles PUT /users/{id}/status.
func (h *User) SetStatus(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r, h.contextManager)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	userID, err := userIDParam(r)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	var req setStatusRequest
	if err = response.Decode(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err = h.authService.SetStatus(r.Context(), principal.UserID, userID, req.Status); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	h.logger.Info("User handler: status changed",
		"actor_id", principal.UserID.String(),
		"identity_id", userID.String(),
		"status", string(req.Status))
	response.OK(w, http.StatusOK, "status updated", nil)
}
