package middleware

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/studypartner-auth/internal/logger"
)

const healthPrefix = "/grpc.health.v1.Health/"

// Logging is a unary interceptor that logs gRPC requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method name, duration and status for each unary request.
// Health probes are logged at debug level.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := codes.OK
	if err != nil {
		code = codes.Internal
		if st, ok := status.FromError(err); ok {
			code = st.Code()
		}
	}

	attrs := []any{
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", code.String(),
	}

	switch {
	case code == codes.Internal || code == codes.Unknown || code == codes.Unavailable:
		l.logger.Error("gRPC request failed", append(attrs, "error", err.Error())...)
	case err != nil:
		l.logger.Info("gRPC request rejected", attrs...)
	case strings.HasPrefix(info.FullMethod, healthPrefix):
		l.logger.Debug("gRPC request completed", attrs...)
	default:
		l.logger.Info("gRPC request completed", attrs...)
	}

	return resp, err
}
