package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/afrobeatles/fanstore/internal/cache"
)

// HealthChecker is implemented by cache backends with an external dependency.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// RegisterRoutes wires the storefront routes: frontend pages, the JSON API
// and the operational endpoints. backend may be nil (in-memory cache).
func RegisterRoutes(app *fiber.App, h *Handler, pages *Pages, st cache.Store, backend HealthChecker) {
	app.Use(cors.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		checks := map[string]string{
			"cache": "ok",
		}
		status := "ok"
		code := fiber.StatusOK

		healthCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if backend != nil {
			if err := backend.HealthCheck(healthCtx); err != nil {
				checks["cache"] = err.Error()
				status = "degraded"
				code = fiber.StatusServiceUnavailable
			}
		}

		_, provisioned := st.Product(healthCtx)

		return c.Status(code).JSON(fiber.Map{
			"status":      status,
			"provisioned": provisioned,
			"checks":      checks,
		})
	})

	// Frontend pages
	app.Get("/", pages.Landing)
	app.Get("/signup", pages.Signup)
	app.Get("/leaderboard", pages.Leaderboard)

	// JSON API
	app.Post("/create-payment-link", h.CreatePaymentLinkHandler)
	app.Get("/leaders", h.LeadersHandler)

	// Remaining static assets (scripts, styles, images)
	app.Static("/", pages.staticDir)
}
