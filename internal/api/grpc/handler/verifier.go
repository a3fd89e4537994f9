package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/studypartner-auth/internal/api/grpc/verifier"
	"github.com/dtroode/studypartner-auth/internal/apperror"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// Verifier answers token verification calls. The bearer token is checked
// by the auth interceptor before Verify runs.
type Verifier struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewVerifier creates a new Verifier handler.
func NewVerifier(contextManager model.ContextManager, logger *logger.Logger) *Verifier {
	return &Verifier{contextManager: contextManager, logger: logger}
}

// Verify returns {identityId, email, roles} of the caller's token.
func (h *Verifier) Verify(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	principal, ok := h.contextManager.GetPrincipal(ctx)
	if !ok {
		return nil, verifier.ToStatus(apperror.AuthenticationReason(apperror.ReasonTokenMissing, "authorization header required"))
	}

	out, err := verifier.EncodePrincipal(principal)
	if err != nil {
		h.logger.Error("Verifier handler: failed to encode principal",
			"identity_id", principal.UserID.String(),
			"error", err.Error())
		return nil, verifier.ToStatus(apperror.Internal("failed to encode principal", err))
	}

	h.logger.Debug("Verifier handler: token verified", "identity_id", principal.UserID.String())
	return out, nil
}
