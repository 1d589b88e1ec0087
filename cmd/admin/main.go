package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/wellness-admin/internal/application/auth"
	"github.com/jhoicas/wellness-admin/internal/application/billing"
	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/internal/application/usecase"
	"github.com/jhoicas/wellness-admin/internal/application/validation"
	"github.com/jhoicas/wellness-admin/internal/domain/breadcrumb"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
	"github.com/jhoicas/wellness-admin/internal/infrastructure/apiclient"
	infrapdf "github.com/jhoicas/wellness-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/wellness-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/wellness-admin/internal/infrastructure/querycache"
	httpRouter "github.com/jhoicas/wellness-admin/internal/interfaces/http"
	"github.com/jhoicas/wellness-admin/pkg/config"
	"github.com/jhoicas/wellness-admin/pkg/logger"
	"github.com/jhoicas/wellness-admin/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("iniciando aplicación")

	// Las tareas de fondo (janitor de caché, GC de sesiones) viven lo que este contexto.
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	m := metrics.New(strings.ReplaceAll(cfg.App.Name, "-", "_"))

	client := apiclient.New(apiclient.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		Timeout:  cfg.Upstream.Timeout,
		RetryMax: cfg.Upstream.RetryMax,
	}, log.Component("apiclient"), m)

	// Caché de consultas: memoria por instancia o Redis compartido
	var store querycache.Store
	switch cfg.Cache.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		store = querycache.NewRedisStore(rdb, cfg.Cache.RedisKeySpace, cfg.Cache.InactiveFor)
	default:
		mem := querycache.NewMemoryStore(cfg.Cache.InactiveFor, cfg.Cache.MaxEntries, time.Now)
		go mem.Run(ctx, time.Minute, log.Component("querycache"))
		store = mem
	}
	cache := querycache.New(store, querycache.Config{FreshFor: cfg.Cache.FreshFor}, log.Component("querycache"), m)

	// Sesiones: memoria de fiber o tabla en PostgreSQL
	sessCfg := session.Config{
		Expiration:     cfg.Session.Expiration,
		KeyLookup:      "cookie:admin_session",
		CookieDomain:   cfg.Session.CookieDomain,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		KeyGenerator:   uuid.NewString,
	}
	if cfg.Session.Storage == "postgres" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		storage, err := postgres.NewSessionStorage(ctx, pool, log.Component("sessions"))
		if err != nil {
			log.Fatal().Err(err).Msg("tabla de sesiones")
		}
		go storage.RunGC(ctx, 10*time.Minute)
		sessCfg.Storage = storage
	}
	sessions := session.New(sessCfg)

	registry := resource.Default()
	trails := breadcrumb.NewResolver(registry)
	validator := validation.New()

	resourceUC := usecase.NewResourceUseCase(registry, trails, client, cache, validator, log.Component("resources"))
	authUC := auth.NewAuthUseCase(client, validator)

	// PDF: factura imprimible a partir del detalle que devuelve la API
	invoicePDFUC := billing.NewPDFUseCase(resourceUC, infrapdf.NewInvoiceGenerator(), ports.Issuer{
		Name:    cfg.Billing.IssuerName,
		Email:   cfg.Billing.IssuerEmail,
		Address: cfg.Billing.IssuerAddress,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Upstream.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSOrigins,
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.DocsFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsFile,
			Path:     "docs",
			Title:    "Wellness Admin BFF",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resources:  resourceUC,
		AuthUC:     authUC,
		InvoicePDF: invoicePDFUC,
		Registry:   registry,
		Trails:     trails,
		Sessions:   sessions,
		Cookies: httpRouter.CookieConfig{
			Domain: cfg.Session.CookieDomain,
			Secure: cfg.Session.CookieSecure,
		},
		Log: log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
