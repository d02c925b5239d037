package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateBody parses the JSON body into dest and checks its validate tags.
// The returned error text is safe to show to clients.
func ValidateBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return errors.New("Invalid request body")
	}

	if err := validate.Struct(dest); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
			return errors.New("Invalid request body")
		}
		firstError := validationErrors[0]

		switch firstError.Tag() {
		case "required":
			return errors.New(firstError.Field() + " is required")
		case "email":
			return errors.New("Invalid email format")
		case "min", "gte":
			return errors.New(firstError.Field() + " must be at least " + firstError.Param())
		case "max", "lte":
			return errors.New(firstError.Field() + " must be at most " + firstError.Param())
		case "oneof":
			return errors.New(firstError.Field() + " must be one of: " + firstError.Param())
		default:
			return errors.New("Validation failed for " + firstError.Field())
		}
	}
	return nil
}
