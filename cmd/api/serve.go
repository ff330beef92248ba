package main

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/credential-gateway/internal/api/http"
	"github.com/spec-kit/credential-gateway/internal/config"
	"github.com/spec-kit/credential-gateway/internal/events"
	"github.com/spec-kit/credential-gateway/internal/observability"
	"github.com/spec-kit/credential-gateway/internal/persistence"
	"github.com/spec-kit/credential-gateway/internal/repository"
	"github.com/spec-kit/credential-gateway/internal/service"
	"github.com/spec-kit/credential-gateway/internal/worker"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP gateway (default)",
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret && !cfg.App.IsDevelopment() {
		logger.Warn("AUTH_JWT_SECRET is the built-in default; set a real secret outside development")
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	var stream service.StreamWriter
	if redis != nil {
		stream = redis
	}
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, stream, cfg.Audit))

	userRepo := repository.NewMemoryUserRepository()
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	if cfg.Seed.UsersFile != "" {
		created, err := repository.SeedUsersFromFile(c.Context, userRepo, authService.Hasher(), cfg.Seed.UsersFile)
		if err != nil {
			return err
		}
		logger.Info("seeded users", zap.String("file", cfg.Seed.UsersFile), zap.Int("created", created))
	}

	app := httptransport.NewApp(*cfg, httptransport.AppDependencies{
		Logger:      logger,
		Metrics:     observability.NewMetrics(),
		AuthService: authService,
		Redis:       redis,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-c.Context.Done():
		logger.Info("shutting down", zap.Error(c.Context.Err()))
	}
	return app.Shutdown()
}
