package middleware

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/dtroode/studypartner-auth/internal/api/grpc/verifier"
	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// Authenticator verifies an Authorization header value.
type Authenticator interface {
	Authenticate(header string) (model.Principal, error)
}

// Authenticate validates bearer tokens and injects the principal into context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the authorization metadata, validates the token and
// returns a context carrying the principal.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(verifier.AuthorizationKey); len(values) > 0 {
			header = values[0]
		}
	}

	principal, err := m.authenticator.Authenticate(header)
	if err != nil {
		m.logger.Debug("Authenticate interceptor: request rejected", "reason", string(apperror.ReasonOf(err)))
		return nil, verifier.ToStatus(err)
	}

	return m.contextManager.SetPrincipal(ctx, principal), nil
}
