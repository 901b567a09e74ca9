package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/vendas-api/internal/application/billing"
	"github.com/jhoicas/vendas-api/internal/application/sales"
	"github.com/jhoicas/vendas-api/internal/infrastructure/kv"
	"github.com/jhoicas/vendas-api/internal/infrastructure/metrics"
	"github.com/jhoicas/vendas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vendas-api/internal/infrastructure/report"
	"github.com/jhoicas/vendas-api/internal/infrastructure/salesapi"
	httpRouter "github.com/jhoicas/vendas-api/internal/interfaces/http"
	"github.com/jhoicas/vendas-api/pkg/config"
	"github.com/jhoicas/vendas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("draft_store", cfg.Draft.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
	}

	drafts, err := kv.OpenBackend(ctx, cfg.Draft, cfg.Redis, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de borradores")
	}
	defer drafts.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewWithRegisterer(reg)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida, se usa UTC")
		loc = time.UTC
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	salesClient := salesapi.New(cfg.SalesAPI, log.Component("salesapi"))

	registry := sales.NewRegistry(sales.Deps{
		Drafts:         drafts.Repo,
		Customers:      customerRepo,
		Catalog:        postgres.NewCatalogRepository(pool),
		Sellers:        salesClient,
		Creator:        salesClient,
		Renderer:       report.New(cfg.Report.Format),
		Log:            log.Component("sales"),
		Metrics:        m,
		Location:       loc,
		NotifyDuration: cfg.Notify.Duration,
	})
	defer registry.Close()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go registry.Run(sweepCtx, cfg.Session.SweepInterval, cfg.Session.IdleTimeout)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.SalesAPI.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vendas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		if err := drafts.Health(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name, "draft_store": drafts.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "draft_store": drafts.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Registry:   registry,
		CustomerUC: billing.NewCustomerUseCase(customerRepo),
		JWTSecret:  cfg.JWT.Secret,
		Log:        log.Component("http"),
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
