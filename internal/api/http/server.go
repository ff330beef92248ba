package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/credential-gateway/internal/api/http/handlers"
	"github.com/spec-kit/credential-gateway/internal/auth"
	"github.com/spec-kit/credential-gateway/internal/config"
	"github.com/spec-kit/credential-gateway/internal/observability"
	"github.com/spec-kit/credential-gateway/internal/persistence"
	"github.com/spec-kit/credential-gateway/internal/service"
)

// AppDependencies are the collaborators NewApp wires into handlers.
type AppDependencies struct {
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	AuthService *service.AuthService
	Redis       *persistence.Redis
}

// NewApp builds the fiber application with middlewares and routes attached.
func NewApp(cfg config.Config, deps AppDependencies) *fiber.App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, deps.Metrics, cfg.App.RequestTimeout())

	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Redis, logger),
		Auth:        handlers.NewAuthHandler(deps.AuthService),
		Numbers:     handlers.NewNumbersHandler(),
		AccessGuard: auth.NewAccessGuard(deps.AuthService.TokenManager(), cfg.Auth.TokenQueryParam),
	})
	return app
}
