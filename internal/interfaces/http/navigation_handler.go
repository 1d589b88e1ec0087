package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/domain/breadcrumb"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

// NavigationHandler menú lateral y breadcrumbs. Sin I/O.
type NavigationHandler struct {
	registry *resource.Registry
	trails   *breadcrumb.Resolver
}

// NewNavigationHandler construye el handler.
func NewNavigationHandler(registry *resource.Registry, trails *breadcrumb.Resolver) *NavigationHandler {
	return &NavigationHandler{registry: registry, trails: trails}
}

// Navigation GET /api/navigation?path=/programs/3
func (h *NavigationHandler) Navigation(c *fiber.Ctx) error {
	return c.JSON(dto.OK(h.registry.Navigation(c.Query("path", "/"))))
}

// Breadcrumbs GET /api/breadcrumbs?path=/programs/3/edit
func (h *NavigationHandler) Breadcrumbs(c *fiber.Ctx) error {
	return c.JSON(dto.OK(h.trails.Resolve(c.Query("path", "/"))))
}
