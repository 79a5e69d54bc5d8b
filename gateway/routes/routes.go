package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shipdrop/backend/gateway/config"
	"github.com/shipdrop/backend/gateway/health"
	"github.com/shipdrop/backend/gateway/middleware"
	"github.com/shipdrop/backend/gateway/proxy"
)

// RouteDefinition maps a path prefix to the backend with its auth policy
type RouteDefinition struct {
	Prefix      string
	Description string
	RequireAuth bool
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	{
		Prefix:      "/auth",
		Description: "Authentication endpoints (signup, login, logout)",
		RequireAuth: false,
	},
	{
		Prefix:      "/users",
		Description: "Operator profile endpoints",
		RequireAuth: true,
	},
	{
		Prefix:      "/api",
		Description: "Dashboard API (products, wholesalers, orders, sync, analytics)",
		RequireAuth: true,
	},
}

// SetupRoutes configures all gateway routes
func SetupRoutes(app *fiber.App, cfg *config.Config) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	checker := health.NewChecker(cfg)

	// Gateway quick health check (no downstream probes)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(checker.QuickCheck())
	})

	// Liveness probe
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	// Readiness probe (probes backend instances)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		status := checker.CheckAll(ctx)
		statusCode := fiber.StatusOK
		if status.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}
		return c.Status(statusCode).JSON(status)
	})

	// Route overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ShipDrop Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerRoute(app, route, reverseProxy)
	}
}

func registerRoute(app *fiber.App, route RouteDefinition, reverseProxy *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return reverseProxy.Forward(c)
	}

	var middlewares []fiber.Handler
	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
