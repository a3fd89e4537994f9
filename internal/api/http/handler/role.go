package handler

import (
	"net/http"

	"github.com/dtroode/studypartner-auth/internal/api/http/response"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

type createRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Role handles the /roles endpoints.
type Role struct {
	roleService    RoleService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewRole(roleService RoleService, contextManager model.ContextManager, logger *logger.Logger) *Role {
	return &Role{roleService: roleService, contextManager: contextManager, logger: logger}
}

// List handles GET /roles.
func (h *Role) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.List(r.Context())
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	response.OK(w, http.StatusOK, "", roles)
}

// Create handles POST /roles.
func (h *Role) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r, h.contextManager)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	var req createRoleRequest
	if err = response.Decode(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	role, err := h.roleService.Create(r.Context(), principal.UserID, req.Name, req.Description)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	response.OK(w, http.StatusCreated, "role created", role)
}

// Delete handles DELETE /roles/{id}.
func (h *Role) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r, h.contextManager)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	roleID, err := roleIDParam(r, "id")
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	if err = h.roleService.Delete(r.Context(), principal.UserID, roleID); err != nil {
		response.Error(w, h.logger, err)
		return
	}
	response.OK(w, http.StatusOK, "role deleted", nil)
}
