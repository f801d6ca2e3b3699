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

	"github.com/ecotreat/portal-api/internal/application/access"
	"github.com/ecotreat/portal-api/internal/application/contact"
	"github.com/ecotreat/portal-api/internal/application/dashboard"
	"github.com/ecotreat/portal-api/internal/application/report"
	"github.com/ecotreat/portal-api/internal/infrastructure/notify"
	infrapdf "github.com/ecotreat/portal-api/internal/infrastructure/pdf"
	"github.com/ecotreat/portal-api/internal/infrastructure/postgres"
	httpRouter "github.com/ecotreat/portal-api/internal/interfaces/http"
	"github.com/ecotreat/portal-api/pkg/config"
	"github.com/ecotreat/portal-api/pkg/logger"
)

// maintenanceInterval is how often the expiry-warning run fires. Twice a day
// keeps warnings timely; the run itself has no dedup, so a recipient may see
// a repeat inside the same warning window.
const maintenanceInterval = 12 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("database migrations")
	}

	accountRepo := postgres.NewAccountRepository(pool)

	var notifier access.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTPSender(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP_HOST not set, notifications are log-only")
		notifier = notify.NewLogSender(log)
	}

	accessUC := access.NewUseCase(accountRepo, notifier,
		access.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		access.SubscriptionConfig{
			WarningDays: cfg.Subscription.WarningDays,
			PlanMonths:  cfg.Subscription.PlanMonths,
		},
		log,
	)
	dashboardUC := dashboard.NewUseCase(accountRepo, cfg.Subscription.WarningDays)
	contactUC := contact.NewUseCase(notifier, cfg.SMTP.AdminInbox, log)

	renderer := infrapdf.NewMarotoRenderer()
	exportUC := report.NewExportUseCase(renderer, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EcoTreat Portal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AccessUC:    accessUC,
		ExportUC:    exportUC,
		DashboardUC: dashboardUC,
		ContactUC:   contactUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	maintenanceCtx, stopMaintenance := context.WithCancel(ctx)
	go runExpiryMaintenance(maintenanceCtx, accessUC, log)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")
	stopMaintenance()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// runExpiryMaintenance periodically warns accounts whose subscription ends
// inside the warning window. Runs once at startup, then on the ticker.
func runExpiryMaintenance(ctx context.Context, uc *access.UseCase, log *logger.Logger) {
	run := func() {
		notified, err := uc.RunExpiryMaintenance(ctx, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("expiry maintenance failed")
			return
		}
		log.Debug().Int("notified", notified).Msg("expiry maintenance finished")
	}

	run()
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
