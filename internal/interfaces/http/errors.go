package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
)

// respondError traduce err al sobre de error. Un 401 marca la petición para que
// el puente de sesión la destruya y borre las cookies.
func respondError(c *fiber.Ctx, err error) error {
	status, body := dto.ErrorFrom(err)
	if status == fiber.StatusUnauthorized {
		markUnauthorized(c)
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler manejador global de fiber: rutas inexistentes, cuerpos demasiado
// grandes y cualquier error que un handler devuelva sin responder.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{
				Status:  dto.StatusError,
				Code:    "http_error",
				Message: fe.Message,
			})
		}
		status, body := dto.ErrorFrom(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		}
		return c.Status(status).JSON(body)
	}
}
