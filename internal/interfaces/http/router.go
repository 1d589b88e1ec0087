package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wellness-admin/internal/application/auth"
	"github.com/jhoicas/wellness-admin/internal/application/billing"
	"github.com/jhoicas/wellness-admin/internal/application/usecase"
	"github.com/jhoicas/wellness-admin/internal/domain/breadcrumb"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resources  *usecase.ResourceUseCase
	AuthUC     *auth.AuthUseCase
	InvoicePDF *billing.PDFUseCase
	Registry   *resource.Registry
	Trails     *breadcrumb.Resolver
	Sessions   *session.Store
	Cookies    CookieConfig
	Log        zerolog.Logger
	Now        func() time.Time // opcional; time.Now por defecto
}

// Router registra las rutas del BFF bajo /api. Todas pasan por el puente de sesión.
func Router(app *fiber.App, deps RouterDeps) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	api := app.Group("/api", TokenBridge(deps.Sessions, deps.Cookies, now, deps.Log))
	gate := AuthGate(now)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", OptionalAuth(now), authHandler.Logout)
	authGroup.Get("/me", gate, authHandler.Me)

	// Navegación (estática, pero solo para sesiones iniciadas)
	navHandler := NewNavigationHandler(deps.Registry, deps.Trails)
	api.Get("/navigation", gate, navHandler.Navigation)
	api.Get("/breadcrumbs", gate, navHandler.Breadcrumbs)

	resHandler := NewResourceHandler(deps.Resources, deps.InvoicePDF)
	api.Get("/lookup/:name", gate, resHandler.Lookup)

	// Recursos: las rutas fijas van antes que /:id
	admin := api.Group("/admin", gate)
	admin.Get("/invoices/:id/pdf", resHandler.InvoicePDF)
	admin.Get("/:resource/skeleton", resHandler.Skeleton)
	admin.Get("/:resource", resHandler.List)
	admin.Post("/:resource", resHandler.Create)
	admin.Get("/:resource/:id", resHandler.Show)
	admin.Put("/:resource/:id", resHandler.Update)
	admin.Delete("/:resource/:id", resHandler.Delete)
}
