package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/relato-ai/relato/internal/config"
	"github.com/relato-ai/relato/internal/handler"
	"github.com/relato-ai/relato/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AIHandler *handler.AIHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/healthz", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AIHandler != nil {
		deps.AIHandler.Register(api.Group("/ai"))
	}
}
