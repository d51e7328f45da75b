package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"

	"github.com/spec-kit/order-service/internal/api/http/handlers"
	"github.com/spec-kit/order-service/internal/auth"
	"github.com/spec-kit/order-service/internal/observability"
)

// NewApp builds a Fiber app with global middlewares and all routes registered.
func NewApp(appName string, logger *zap.Logger, timeout time.Duration, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, routes.Metrics, timeout)
	RegisterRoutes(app, routes)
	return app
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Orders         *handlers.OrdersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Static order paths are registered before /:id.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/refresh", cfg.AuthMiddleware.HandleRefresh, cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	orders := app.Group("/order", cfg.AuthMiddleware.Handle)
	orders.Get("/", cfg.Orders.Welcome)
	orders.Post("/create", cfg.Orders.CreateOrder)
	orders.Get("/list", cfg.Orders.ListOrders)
	orders.Get("/user/orders", cfg.Orders.ListUserOrders)
	orders.Get("/user/order/:id", cfg.Orders.GetUserOrder)
	orders.Get("/:id", cfg.Orders.GetOrder)
	orders.Put("/:id/update", cfg.Orders.UpdateOrder)
	orders.Delete("/:id/delete", cfg.Orders.DeleteOrder)
	orders.Patch("/:id/status", auth.RequireStaff(), cfg.Orders.UpdateOrderStatus)

	products := app.Group("/product", cfg.AuthMiddleware.Handle)
	products.Post("/create", auth.RequireStaff(), cfg.Products.CreateProduct)
	products.Get("/list", cfg.Products.ListProducts)
	products.Get("/:id", cfg.Products.GetProduct)
}
