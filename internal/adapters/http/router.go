package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/samirrijal/touristapi/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and documentation routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Rate limiting: 60 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/v1/health" || p == "/v1/ready" || p == "/metrics"
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())
	app.Use(DeprecationMiddleware(LegacyRoutes))

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	reqTimeout := deps.Settings.requestTimeout()
	lookup := timeout.NewWithContext(LookupHandler(deps), reqTimeout)
	tts := timeout.NewWithContext(TTSHandler(deps), reqTimeout)
	cfg := ConfigHandler(deps)

	v1 := app.Group("/v1")
	v1.Get("/lookup", lookup)
	v1.Post("/tts", tts)
	v1.Get("/config", cfg)

	// Unversioned paths kept for existing clients
	app.Get("/api/lookup", lookup)
	app.Post("/api/tts", tts)
	app.Get("/config", cfg)

	app.Post("/graphql", timeout.NewWithContext(GraphQLHandler(deps), reqTimeout))

	SetupDocs(app, deps.Settings.OpenAPIPath)

	app.Use(func(c *fiber.Ctx) error {
		return errNotFound(c, "route not found")
	})
}
