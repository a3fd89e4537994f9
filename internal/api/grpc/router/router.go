package router

import (
	"context"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/studypartner-auth/internal/api/grpc/handler"
	"github.com/dtroode/studypartner-auth/internal/api/grpc/middleware"
	"github.com/dtroode/studypartner-auth/internal/api/grpc/verifier"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/model"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router represents a gRPC router for the token verification contract.
// It manages service registration and interceptor configuration.
type Router struct {
	authenticator  middleware.Authenticator
	contextManager model.ContextManager
	health         *health.Server
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	authenticator middleware.Authenticator,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authenticator:  authenticator,
		contextManager: contextManager,
		health:         health.NewServer(),
		logger:         logger,
	}
}

// requiresAuth selects the methods guarded by the bearer token check.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return strings.HasPrefix(c.FullMethod(), "/"+verifier.ServiceName+"/")
}

// Register registers all gRPC services and interceptors.
// Interceptor order is recovery, logging, then auth for verifier calls.
func (r *Router) Register() *grpc.Server {
	rec := middleware.NewRecovery(r.logger)
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(rec.Handle)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	verifier.RegisterServer(s, handler.NewVerifier(r.contextManager, r.logger))
	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	r.health.SetServingStatus(verifier.ServiceName, healthpb.HealthCheckResponse_SERVING)
	r.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return s
}

// MonitorReadiness mirrors the store's reachability into the health service
// until ctx is done, then reports NOT_SERVING.
func (r *Router) MonitorReadiness(ctx context.Context, pinger Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	serving := true
	for {
		select {
		case <-ctx.Done():
			r.health.Shutdown()
			return
		case <-ticker.C:
		}

		pingCtx, cancel := context.WithTimeout(ctx, interval)
		err := pinger.Ping(pingCtx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		if (err == nil) != serving {
			serving = err == nil
			r.logger.Warn("gRPC health: readiness changed", "serving", serving)
		}
		r.health.SetServingStatus("", status)
		r.health.SetServingStatus(verifier.ServiceName, status)
	}
}
