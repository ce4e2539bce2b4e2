package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/sigma-platform/authentication/internal/api/http"
	"github.com/sigma-platform/authentication/internal/api/http/handlers"
	"github.com/sigma-platform/authentication/internal/auth"
	"github.com/sigma-platform/authentication/internal/config"
	"github.com/sigma-platform/authentication/internal/events"
	"github.com/sigma-platform/authentication/internal/observability"
	"github.com/sigma-platform/authentication/internal/persistence"
	"github.com/sigma-platform/authentication/internal/ratelimit"
	"github.com/sigma-platform/authentication/internal/repository"
	"github.com/sigma-platform/authentication/internal/service"
	"github.com/sigma-platform/authentication/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	hasher := auth.NewPasswordHasher(auth.Argon2idParams{
		MemoryKiB:   uint32(cfg.Auth.Argon2MemoryKiB),
		Iterations:  uint32(cfg.Auth.Argon2Iterations),
		Parallelism: uint8(cfg.Auth.Argon2Parallelism),
	})

	var (
		adminRepo   repository.AdminRepository
		sessionRepo repository.TableSessionRepository
	)
	if pg.Enabled() {
		adminRepo = repository.NewAdminRepository(pg.PoolHandle(), hasher)
		sessionRepo = repository.NewTableSessionRepository(pg.PoolHandle())
	} else {
		adminRepo = repository.NewMemoryAdminRepository(hasher)
		sessionRepo = repository.NewMemoryTableSessionRepository()
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	adminService := service.NewAdminService(service.AdminDependencies{
		AdminRepo:  adminRepo,
		Verifier:   hasher,
		Dispatcher: dispatcher,
	})
	sessionService := service.NewTableSessionService(service.TableSessionDependencies{
		SessionRepo:    sessionRepo,
		Dispatcher:     dispatcher,
		ExclusiveTable: cfg.Session.ExclusiveTable,
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenIssuer)
	authMiddleware := auth.NewAuthMiddleware(tokens, adminService, sessionService, logger)
	metrics := observability.NewMetrics(cfg.App.Name)

	var loginLimiter fiber.Handler
	if redis.Enabled() {
		limiter := ratelimit.NewRedisLimiter(redis.Client, cfg.App.Name+":login", cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow())
		loginLimiter = httptransport.LoginRateLimit(limiter, logger, metrics)
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Admins:         handlers.NewAdminHandler(adminService, auth.NewAuthenticator(adminService), tokens, metrics),
		TableSessions:  handlers.NewTableSessionHandler(sessionService, tokens, metrics),
		AuthMiddleware: authMiddleware,
		LoginLimiter:   loginLimiter,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
