package middleware

import (
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const RequestIDHeader = "X-Request-ID"

func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		Generator:  utils.NewRequestID,
		ContextKey: "requestid",
	})
}

// GetRequestID returns the ID assigned to the current request, if any.
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
