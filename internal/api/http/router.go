package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
	// Metrics enables GET /metrics when set.
	Metrics *observability.Metrics
	// UploadsDir is served at UploadsPrefix when set.
	UploadsDir    string
	UploadsPrefix string
}

// NewApp builds the Fiber application with middlewares and routes. The app is
// immutable: values read from a request stay valid after it completes, which
// the in-memory store relies on.
func NewApp(cfg config.AppConfig, logger *zap.Logger, metrics *observability.Metrics, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    cfg.BodyLimit(),
		Immutable:    true,
		ErrorHandler: ErrorHandler(logger, metrics),
	})
	RegisterMiddlewares(app, logger, metrics, cfg)
	RegisterRoutes(app, routes)
	return app
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
	if cfg.UploadsDir != "" {
		app.Static(cfg.UploadsPrefix, cfg.UploadsDir)
	}

	app.Post("/signup", cfg.Users.Signup)
	app.Post("/login", cfg.Users.Login)

	products := app.Group("/products", cfg.AuthMiddleware.Handle)
	products.Post("", cfg.Products.Create)
	products.Get("", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Put("/:id", cfg.Products.Update)
	products.Delete("/:id", cfg.Products.Delete)
}
