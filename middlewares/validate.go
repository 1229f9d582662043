package middlewares

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// BindAndValidate parses the request body into dst and runs the struct
// validation tags. Parse failures return 400; rule failures return a
// validator.ValidationErrors, which the error handler maps to a 422 field map.
func BindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	// Top-level slices (batch item create) bypass struct tags; validate each
	// element with ValidateStruct in the controller instead.
	return validate.Struct(dst)
}

// ValidateStruct runs the shared validator on a single struct value.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
