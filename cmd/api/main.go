package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/hemocentro-api/internal/application/analytics"
	"github.com/jhoicas/hemocentro-api/internal/application/auth"
	appdonor "github.com/jhoicas/hemocentro-api/internal/application/donor"
	"github.com/jhoicas/hemocentro-api/internal/application/request"
	"github.com/jhoicas/hemocentro-api/internal/application/stock"
	donordomain "github.com/jhoicas/hemocentro-api/internal/domain/donor"
	infrapdf "github.com/jhoicas/hemocentro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/hemocentro-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/hemocentro-api/internal/interfaces/http"
	"github.com/jhoicas/hemocentro-api/pkg/config"
	"github.com/jhoicas/hemocentro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	donorRepo := postgres.NewDonorRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := stock.NewLedgerUseCase(txRunner, stockRepo, movementRepo)
	workflowUC := request.NewWorkflowUseCase(txRunner, requestRepo, request.AutoDecline)
	donorUC := appdonor.NewDonorUseCase(donorRepo, donordomain.Rules{
		MinAge:       cfg.Donor.MinAge,
		CooldownDays: cfg.Donor.CooldownDays,
	})
	dashboardUC := analytics.NewDashboardUseCase(ledgerUC, workflowUC)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: reporte de saldos por grupo sanguíneo
	reportGen := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hemocentro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:    ledgerUC,
		WorkflowUC:  workflowUC,
		DonorUC:     donorUC,
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		ReportGen:   reportGen,
		AppName:     cfg.App.Name,
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
