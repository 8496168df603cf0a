package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0"

		case strings.HasPrefix(path, "/v1/dashboard") ||
			strings.HasPrefix(path, "/v1/auth") ||
			strings.HasPrefix(path, "/v1/location"):
			ttl = "private, no-store" // Per-user data

		case path == "/v1/categories":
			ttl = "public, max-age=3600" // Fixed category list

		case path == "/v1/vendors":
			ttl = "public, max-age=60" // Discovery results change with stock

		case strings.HasPrefix(path, "/v1/vendors/"):
			ttl = "public, max-age=300" // 5 min for a single vendor

		case strings.HasPrefix(path, "/v1/items"):
			ttl = "public, max-age=60" // Inventory moves fast

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300" // 5 min default for API endpoints
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
