package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/studypartner-auth/internal/api/http/response"
	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// OwnerResolver returns the identity owning the resource addressed by r.
type OwnerResolver func(r *http.Request) (uuid.UUID, error)

// URLParamOwner resolves the owner from a uuid route parameter.
func URLParamOwner(param string) OwnerResolver {
	return func(r *http.Request) (uuid.UUID, error) {
		id, err := uuid.Parse(chi.URLParam(r, param))
		if err != nil {
			return uuid.Nil, apperror.Validation("invalid user id")
		}
		return id, nil
	}
}

// RBAC gates routes on the role set of the authenticated principal. It must
// run after Authenticate.
type RBAC struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewRBAC(contextManager model.ContextManager, logger *logger.Logger) *RBAC {
	return &RBAC{contextManager: contextManager, logger: logger}
}

// RequireRoles passes when the principal holds at least one of allowed.
func (m *RBAC) RequireRoles(allowed ...string) func(http.Handler) http.Handler {
	denied := apperror.Authorization("requires one of roles: " + strings.Join(allowed, ", "))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := m.contextManager.GetPrincipal(r.Context())
			if !ok {
				response.Error(w, m.logger, apperror.AuthenticationReason(apperror.ReasonTokenMissing, "authentication required"))
				return
			}
			if !principal.HasAnyRole(allowed...) {
				m.logger.Info("RBAC middleware: access denied",
					"identity_id", principal.UserID.String(),
					"path", r.URL.Path,
					"required", allowed)
				response.Error(w, m.logger, denied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnerOrAdmin passes for admins and for the owner of the resource.
func (m *RBAC) RequireOwnerOrAdmin(resolve OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := m.contextManager.GetPrincipal(r.Context())
			if !ok {
				response.Error(w, m.logger, apperror.AuthenticationReason(apperror.ReasonTokenMissing, "authentication required"))
				return
			}
			if principal.HasRole(model.RoleAdmin) {
				next.ServeHTTP(w, r)
				return
			}

			owner, err := resolve(r)
			if err != nil {
				response.Error(w, m.logger, err)
				return
			}
			if owner != principal.UserID {
				m.logger.Info("RBAC middleware: access denied",
					"identity_id", principal.UserID.String(),
					"path", r.URL.Path)
				response.Error(w, m.logger, apperror.Authorization("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
