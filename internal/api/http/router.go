package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/sigma-platform/authentication/internal/api/http/handlers"
	"github.com/sigma-platform/authentication/internal/auth"
	"github.com/sigma-platform/authentication/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Admins         *handlers.AdminHandler
	TableSessions  *handlers.TableSessionHandler
	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   fiber.Handler
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	login := []fiber.Handler{cfg.Admins.Login}
	if cfg.LoginLimiter != nil {
		login = append([]fiber.Handler{cfg.LoginLimiter}, login...)
	}

	admins := app.Group("/admins")
	admins.Post("/login", login...)
	admins.Post("/", cfg.Admins.Create)

	adminOnly := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAdmin()}
	admins.Get("/", append(adminOnly, cfg.Admins.Read)...)
	admins.Put("/", append(adminOnly, cfg.Admins.Update)...)
	admins.Delete("/", append(adminOnly, cfg.Admins.Delete)...)

	sessions := app.Group("/table-sessions")
	sessions.Post("/", append(adminOnly, cfg.TableSessions.Create)...)
	sessions.Get("/current", cfg.AuthMiddleware.Handle, auth.RequireTableSession(), cfg.TableSessions.Current)
	sessions.Get("/:id", cfg.AuthMiddleware.Handle, cfg.TableSessions.Get)
	sessions.Post("/:id/deactivate", cfg.AuthMiddleware.Handle, cfg.TableSessions.Deactivate)
	sessions.Put("/:id/checkout", append(adminOnly, cfg.TableSessions.SetCheckout)...)
}
