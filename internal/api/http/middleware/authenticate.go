package middleware

import (
	"net/http"

	"github.com/dtroode/studypartner-auth/internal/api/http/response"
	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// Authenticator verifies an Authorization header value.
type Authenticator interface {
	Authenticate(header string) (model.Principal, error)
}

// Authenticate validates bearer tokens and injects the principal into the
// request context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid access token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.authenticator.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			m.logger.Debug("Authenticate middleware: request rejected",
				"path", r.URL.Path,
				"reason", string(apperror.ReasonOf(err)))
			response.Error(w, m.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetPrincipal(r.Context(), principal)))
	})
}
