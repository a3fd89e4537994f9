package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dtroode/studypartner-auth/database"
	grpcctx "github.com/dtroode/studypartner-auth/internal/api/grpc/context"
	grpcrouter "github.com/dtroode/studypartner-auth/internal/api/grpc/router"
	grpcserver "github.com/dtroode/studypartner-auth/internal/api/grpc/server"
	httpctx "github.com/dtroode/studypartner-auth/internal/api/http/context"
	httprouter "github.com/dtroode/studypartner-auth/internal/api/http/router"
	httpserver "github.com/dtroode/studypartner-auth/internal/api/http/server"
	"github.com/dtroode/studypartner-auth/internal/audit"
	"github.com/dtroode/studypartner-auth/internal/config"
	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/metrics"
	"github.com/dtroode/studypartner-auth/internal/model"
	"github.com/dtroode/studypartner-auth/internal/repository/postgres"
	"github.com/dtroode/studypartner-auth/internal/server"
	"github.com/dtroode/studypartner-auth/internal/service"
	storage "github.com/dtroode/studypartner-auth/internal/storage/minio"
	"github.com/dtroode/studypartner-auth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const (
	shutdownTimeout  = 10 * time.Second
	readinessPeriod  = 5 * time.Second
	migrationTimeout = time.Minute
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err = prepareDatabase(ctx, cfg.Database); err != nil {
		logger.Fatal("failed to prepare database", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.QueryTimeout, cfg.Database.TxTimeout)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	credentialRepo := postgres.NewCredentialRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	auditSink, archive := buildAuditSink(ctx, cfg, logger)
	auditCtx, stopAudit := context.WithCancel(context.Background())
	var auditWG sync.WaitGroup
	if archive != nil {
		auditWG.Add(1)
		go func() {
			defer auditWG.Done()
			archive.Run(auditCtx)
		}()
	}

	credentialService, err := service.NewCredential(credentialRepo, cfg.Bcrypt.Cost, logger)
	if err != nil {
		logger.Fatal("failed to initialize credential service", "error", err)
	}
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	tokenService := service.NewTokenService(tokenManager, cfg.JWT.RefreshTTL, logger)
	authService := service.NewAuth(db, userRepo, roleRepo, refreshTokenRepo, credentialService, tokenService, auditSink, appMetrics, logger)
	roleService := service.NewRole(roleRepo, userRepo, auditSink, logger)

	httpHandler := httprouter.New(
		authService,
		roleService,
		tokenService,
		db,
		appMetrics,
		httpctx.NewManager(),
		httprouter.Options{
			CORSOrigins:   cfg.CORS.Origins,
			MaxBodyBytes:  cfg.HTTP.MaxBodyBytes,
			PerMinute:     cfg.RateLimit.PerMinute,
			Burst:         cfg.RateLimit.Burst,
			AuthPerMinute: cfg.RateLimit.AuthPerMinute,
			AuthBurst:     cfg.RateLimit.AuthBurst,
			TrustProxy:    cfg.HTTP.TrustedProxy,
		},
		logger,
	).Register()
	httpSrv := httpserver.NewHTTPServer(httpHandler, fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

	grpcRouter := grpcrouter.New(tokenService, grpcctx.NewManager(), logger)
	grpcSrv := grpcserver.NewGRPCServer(grpcRouter.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	go grpcRouter.MonitorReadiness(ctx, db, readinessPeriod)

	servers := []struct {
		srv model.Server
		sl  model.SecurityLayer
	}{
		{httpSrv, securityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)},
		{grpcSrv, securityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)},
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.srv, s.sl)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.srv.Address())
		}
	}
	wg.Wait()

	stopAudit()
	auditWG.Wait()

	logger.Info("shutdown complete")
}

// prepareDatabase applies migrations and seeds the default roles over a
// short-lived database/sql handle.
func prepareDatabase(ctx context.Context, cfg config.Database) error {
	ctx, cancel := context.WithTimeout(ctx, migrationTimeout)
	defer cancel()

	sqlDB, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err = database.MigrateDB(ctx, sqlDB); err != nil {
		return err
	}

	seeds, err := database.LoadRoleSeeds(cfg.RolesSeedFile)
	if err != nil {
		return err
	}
	return database.SeedRoles(ctx, sqlDB, seeds)
}

// buildAuditSink always logs audit events and, when enabled, archives them
// to object storage.
func buildAuditSink(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.AuditSink, *audit.ArchiveSink) {
	logSink := audit.NewLogSink(logger)
	if !cfg.Audit.ArchiveEnabled {
		return logSink, nil
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	archive := audit.NewArchiveSink(storageClient, cfg.Audit.BufferSize, logger)
	return audit.Multi{logSink, archive}, archive
}

func securityLayer(enableHTTPS bool, certFile, keyFile string) model.SecurityLayer {
	if enableHTTPS {
		return server.NewTLSListener(certFile, keyFile)
	}
	return server.NewPlainListener()
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
