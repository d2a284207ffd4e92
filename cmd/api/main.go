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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/producao-espumas/internal/application/auth"
	"github.com/jhoicas/producao-espumas/internal/application/bom"
	"github.com/jhoicas/producao-espumas/internal/application/inventory"
	"github.com/jhoicas/producao-espumas/internal/application/production"
	"github.com/jhoicas/producao-espumas/internal/application/report"
	infrapdf "github.com/jhoicas/producao-espumas/internal/infrastructure/pdf"
	"github.com/jhoicas/producao-espumas/internal/infrastructure/postgres"
	"github.com/jhoicas/producao-espumas/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/producao-espumas/internal/interfaces/http"
	"github.com/jhoicas/producao-espumas/pkg/config"
	"github.com/jhoicas/producao-espumas/pkg/logger"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool, log.Named("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	componentRepo := postgres.NewComponentRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	foamTypeRepo := postgres.NewFoamTypeRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	componentUC := inventory.NewComponentUseCase(txRunner, componentRepo, balanceRepo)
	stockUC := inventory.NewStockUseCase(txRunner, componentRepo, movementRepo, balanceRepo, log.Named("stock"))
	bomUC := bom.NewUseCase(foamTypeRepo, bomRepo, componentRepo)

	// Registro de blocos: el stock UC descuenta dentro de la transacción del bloco.
	batchUC := production.NewRegisterBatchUseCase(txRunner, stockUC, bomUC, batchRepo, log.Named("production"))
	dashboardUC := report.NewDashboardUseCase(reportRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Users.EmailDomain)

	pdfGenerator := infrapdf.NewReportGenerator(cfg.App.Name)

	recalcJob := scheduler.New(cfg.Stock.RecalcCron, stockUC, log.Named("scheduler"))
	if err := recalcJob.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	defer recalcJob.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestObserver(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Produção de Espumas API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ComponentUC: componentUC,
		StockUC:     stockUC,
		BOMUC:       bomUC,
		BatchUC:     batchUC,
		DashboardUC: dashboardUC,
		PDF:         pdfGenerator,
		JWTSecret:   cfg.JWT.Secret,
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
