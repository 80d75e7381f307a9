package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/restaurantflow/internal/services"
)

// serviceError maps service failures onto HTTP errors: validation failures
// become 400, unknown ids become 404, anything else bubbles up to the
// recover middleware as a 500.
func serviceError(err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}
