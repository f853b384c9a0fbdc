package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/forecast-dashboard/internal/application/dto"
	"github.com/jhoicas/forecast-dashboard/internal/domain"
)

// errorStatus traduce los errores de dominio a status HTTP y código de error.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		return fiber.StatusServiceUnavailable, "DATA_UNAVAILABLE"
	case errors.Is(err, domain.ErrEmptySelection):
		return fiber.StatusNotFound, "EMPTY_SELECTION"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "INVALID_PARAMS"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
