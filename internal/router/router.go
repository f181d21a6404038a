package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hibara/portfolio-api/internal/config"
	"github.com/hibara/portfolio-api/internal/handler"
	"github.com/hibara/portfolio-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ContactHandler *handler.ContactHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ContactHandler != nil {
		deps.ContactHandler.Register(api.Group("/contact"))
	}

	app.Get("/metrics", observability.MetricsHandler())
}
