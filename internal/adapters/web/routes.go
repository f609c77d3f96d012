package web

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trendboard/internal/config"
)

// NewApp creates the Fiber app with the shared middleware chain. Request
// values are immutable because log entries outlive the handler.
func NewApp(cfg config.ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
		Immutable:             true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(RequestIDConfig()))
	app.Use(RequestIDToContextMiddleware())
	app.Use(RequestLoggerMiddleware())

	return app
}

// SetupRoutes configures the application routes. A nil rateLimiter leaves
// recommendations unthrottled.
func SetupRoutes(app *fiber.App, handlers *Handlers, rateLimiter *RateLimiter) {
	app.Get("/healthz", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", BearerTokenMiddleware())

	api.Get("/trends/:platform", handlers.Trends)
	api.Get("/trends/:platform/details", handlers.TrendDetails)

	// Each recommendation fans out to six backend calls.
	if rateLimiter != nil {
		api.Get("/recommendations", rateLimiter.Middleware(), handlers.Recommendations)
	} else {
		api.Get("/recommendations", handlers.Recommendations)
	}

	api.Get("/saved", handlers.SavedContent)
	api.Get("/saved/facets", handlers.SavedFacets)
	api.Put("/saved/:id", handlers.ToggleSave)

	api.Get("/profile", handlers.GetProfile)
	api.Put("/profile", handlers.UpdateProfile)
}
