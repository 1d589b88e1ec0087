package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wellness-admin/internal/application/auth"
	"github.com/jhoicas/wellness-admin/internal/application/dto"
)

// AuthHandler login, logout y usuario actual.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Status: dto.StatusError, Code: "invalid_body", Message: "cuerpo inválido"})
	}
	tok, user, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		// Credenciales malas no deben tirar una sesión previa válida.
		status, body := dto.ErrorFrom(err)
		return c.Status(status).JSON(body)
	}
	storeToken(c, tok)
	return c.JSON(dto.OK(dto.LoginResponse{User: user, ExpiresAt: tok.ExpiresAt}))
}

// Logout cierra la sesión en la API (si aún hay token) y destruye la local.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	markLogout(c)
	if err := h.uc.Logout(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Response{Status: dto.StatusSuccess, Message: "Sesión cerrada"})
}

// Me usuario autenticado.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(user))
}
