package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wellness-admin/internal/application/auth"
	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/internal/domain"
)

// AuthGate exige las cookies del puente con una expiración futura y reenvía el
// token a la API a través del contexto de la petición.
func AuthGate(now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := auth.FromCookies(c.Cookies(auth.CookieToken), c.Cookies(auth.CookieExpiresAt), now())
		if !tok.Valid {
			markUnauthorized(c)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Status:  dto.StatusError,
				Code:    string(domain.KindUnauthorized),
				Message: "Sesión no iniciada o expirada",
			})
		}
		c.SetUserContext(ports.WithAccessToken(c.UserContext(), tok.Token))
		return c.Next()
	}
}

// OptionalAuth como AuthGate pero deja pasar sin token (logout con sesión ya vencida).
func OptionalAuth(now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := auth.FromCookies(c.Cookies(auth.CookieToken), c.Cookies(auth.CookieExpiresAt), now())
		if tok.Valid {
			c.SetUserContext(ports.WithAccessToken(c.UserContext(), tok.Token))
		}
		return c.Next()
	}
}
