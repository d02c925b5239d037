package middleware

import (
	"strings"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

const identityKey = "identity"

// Identity is the authenticated principal taken from the bearer token.
type Identity struct {
	UserID uint
	Role   string
	Email  string
	Name   string
}

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(cfg.JWTSecret),
		ContextKey:   "user",
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return utils.Error(c, "Invalid token", fiber.StatusUnauthorized)
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Error(c, "Invalid token", fiber.StatusUnauthorized)
			}

			id, ok := claims["userId"].(float64)
			if !ok || id <= 0 {
				return utils.Error(c, "Invalid token", fiber.StatusUnauthorized)
			}
			role, _ := claims["role"].(string)
			email, _ := claims["email"].(string)
			name, _ := claims["name"].(string)

			c.Locals(identityKey, Identity{UserID: uint(id), Role: role, Email: email, Name: name})
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "missing or malformed") {
		return utils.Error(c, "No token provided", fiber.StatusUnauthorized)
	}
	return utils.Error(c, "Invalid token", fiber.StatusUnauthorized)
}

// RequireRole admits only principals whose role is one of roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return utils.Error(c, "Authentication required", fiber.StatusUnauthorized)
		}
		for _, r := range roles {
			if id.Role == r {
				return c.Next()
			}
		}
		return utils.Error(c, "Access denied", fiber.StatusForbidden)
	}
}

func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	return id, ok
}
