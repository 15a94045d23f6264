package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()
	version := deps.Settings.Version
	if version == "" {
		version = "dev"
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": version,
		})
	}
}

// ReadyHandler reports NATS connectivity and which optional backends are
// enabled. Only a configured but disconnected NATS makes the service not ready.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		checks := make(map[string]string)
		allOK := true

		if deps.NATS != nil {
			if deps.NATS.IsConnected() {
				checks["nats"] = "ok"
			} else {
				checks["nats"] = "disconnected"
				allOK = false
			}
		} else {
			checks["nats"] = "not configured"
		}

		if deps.Lookups != nil && deps.Lookups.GeneratorEnabled() {
			checks["generator"] = "enabled"
		} else {
			checks["generator"] = "disabled"
		}

		if deps.Speech != nil && deps.Speech.Provider() != "" {
			checks["speech"] = deps.Speech.Provider()
		} else {
			checks["speech"] = "not configured"
		}

		if deps.Lookups == nil {
			checks["lookup"] = "not configured"
			allOK = false
		} else {
			checks["lookup"] = "ok"
		}

		status := "ready"
		code := fiber.StatusOK
		if !allOK {
			status = "not ready"
			code = fiber.StatusServiceUnavailable
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	}
}
