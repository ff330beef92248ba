package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/credential-gateway/internal/api/http/handlers"
	"github.com/spec-kit/credential-gateway/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Numbers     *handlers.NumbersHandler
	AccessGuard *auth.AccessGuard
}

// RegisterRoutes wires HTTP routes. Every business route passes the access
// guard before its handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)

	guard := cfg.AccessGuard.Handle
	app.Get("/protected", guard, cfg.Auth.Protected)
	app.Post("/bubble-sort", guard, cfg.Numbers.BubbleSort)
	app.Post("/filter-even", guard, cfg.Numbers.FilterEven)
	app.Post("/sum-elements", guard, cfg.Numbers.Sum)
	app.Post("/max-value", guard, cfg.Numbers.Max)
	app.Post("/binary-search", guard, cfg.Numbers.BinarySearch)
}
