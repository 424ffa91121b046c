package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/handler"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Dashboard *handler.DashboardHandler
	Payload   *handler.PayloadHandler
	Export    *handler.ExportHandler
	Health    *handler.HealthHandler
}

// Setup configures the middleware stack and all routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewSecurityHeaders())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health and metrics (outside the API group, no rate limit)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	renderLimit := middleware.NewRenderRateLimiter().Handler()

	app.Get("/dashboard", renderLimit, h.Dashboard.Stored)

	api := app.Group("/api")

	// Dashboard routes
	api.Post("/dashboard/render", renderLimit, h.Dashboard.Render)
	api.Post("/dashboard/charts", renderLimit, h.Dashboard.Charts)
	api.Get("/dashboard/export", middleware.NewExportRateLimiter().Handler(), h.Export.Export)

	// Payload routes
	writeLimit := middleware.NewPayloadWriteRateLimiter().Handler()
	api.Put("/payloads/:slot", writeLimit, h.Payload.Put)
	api.Get("/payloads/:slot", h.Payload.Get)
	api.Delete("/payloads/:slot", writeLimit, h.Payload.Delete)
}
