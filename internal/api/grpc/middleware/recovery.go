package middleware

import (
	"context"
	"runtime/debug"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/studypartner-auth/internal/logger"
)

// Recovery turns handler panics into Internal errors.
type Recovery struct {
	logger *logger.Logger
}

func NewRecovery(logger *logger.Logger) *Recovery {
	return &Recovery{logger: logger}
}

// Handle is a recovery.RecoveryHandlerFuncContext.
func (r *Recovery) Handle(ctx context.Context, p any) error {
	r.logger.Error("gRPC handler panicked", "panic", p, "stack", string(debug.Stack()))
	return status.Error(codes.Internal, "internal server error")
}
