package middlewares

import (
	"errors"

	"contractorhub-backend/billing"
	"contractorhub-backend/gateways"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Validation errors (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 3) Domain errors
	switch {
	case errors.Is(err, billing.ErrInvalidTransition),
		errors.Is(err, billing.ErrInvoiceNotPayable),
		errors.Is(err, billing.ErrOverpayment),
		errors.Is(err, billing.ErrNonPositiveAmount),
		errors.Is(err, billing.ErrNoLineItems),
		errors.Is(err, billing.ErrEmptyDescription),
		errors.Is(err, billing.ErrNonPositiveQty),
		errors.Is(err, billing.ErrNegativePrice):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, gateways.ErrPaymentDeclined):
		// Gateway failure: no Payment row was written, invoice untouched.
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "payment failed"})
	case errors.Is(err, gateways.ErrUnknownProvider):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// 4) Unknown errors (500)
	log.Error().Err(err).Str("path", c.Path()).Msg("internal error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
