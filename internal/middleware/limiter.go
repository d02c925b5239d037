package middleware

import (
	"time"

	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit caps requests per client IP. When storage is nil the counters
// live in process memory.
func RateLimit(max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	cfg := limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Route().Path
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Error(c, "Too many requests, please try again later", fiber.StatusTooManyRequests)
		},
	}
	if storage != nil {
		cfg.Storage = storage
	}
	return limiter.New(cfg)
}
