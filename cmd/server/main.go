package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resqall/internal/adapters/fixtures"
	"resqall/internal/adapters/http/middleware"
	"resqall/internal/adapters/http/routes"
	"resqall/internal/adapters/http/views"
	"resqall/internal/adapters/persistence/kv"
	"resqall/internal/adapters/persistence/repositories"
	"resqall/internal/config"
	"resqall/internal/core/screens"
	"resqall/internal/core/services"
	"resqall/internal/core/session"
	"resqall/internal/pkg/logging"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "resqall/docs" // Swagger docs
)

// @title ResQAll API
// @version 1.0
// @description Session, dashboard and master log API for the ResQAll rescue network

// @contact.name API Support
// @contact.email support@resqall.com

// @BasePath /api/v1

func main() {
	cfg, envFound, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.AppMode, cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !envFound {
		logger.Warn(".env file not found, using environment variables")
	}
	logger.Info("Configuration loaded", zap.String("mode", cfg.AppMode), zap.String("reportStore", cfg.ReportStore))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	slots, err := kv.Open(cfg.Session.DBPath)
	if err != nil {
		return err
	}
	defer slots.Close()

	identities, err := fixtures.Identities()
	if err != nil {
		return err
	}
	reports, err := fixtures.Reports()
	if err != nil {
		return err
	}
	directory := repositories.NewStaticIdentityDirectory(identities)

	var (
		db         *gorm.DB
		reportRepo repositories.ReportRepository
	)
	switch cfg.ReportStore {
	case config.ReportStoreMySQL:
		db, err = config.ConnectDatabase(cfg, logger)
		if err != nil {
			return err
		}
		defer config.CloseDatabase(db)

		if err := config.NewSeeder(db, logger).Run(reports); err != nil {
			return err
		}
		reportRepo = repositories.NewReportRepository(db)
	default:
		reportRepo = repositories.NewFixtureReportRepository(reports)
	}

	manager := session.NewManager(slots, directory, logger)

	// Sweep slots untouched for longer than the session cookie lives
	ttl := time.Duration(cfg.Session.Days) * 24 * time.Hour
	cronService := services.NewCronService(slots, manager, ttl, logger)
	if err := cronService.Start(cfg.Session.SweepSchedule); err != nil {
		return err
	}
	defer cronService.Stop()

	engine, err := views.NewEngine()
	if err != nil {
		return err
	}

	web := fiber.New(fiber.Config{
		AppName:      "ResQAll",
		Views:        engine,
		ErrorHandler: middleware.CustomErrorHandler,
	})
	middleware.Setup(web, cfg, logger)
	routes.Setup(web, routes.Deps{
		Config:    cfg,
		Logger:    logger,
		Manager:   manager,
		Router:    screens.NewRouter(screens.DefaultRoutes()),
		Auth:      services.NewAuthService(logger),
		Dashboard: services.NewDashboardService(reportRepo, directory),
		Slots:     slots,
		DB:        db,
	})

	stub := fiber.New(fiber.Config{
		AppName:               "ResQAll API stub",
		DisableStartupMessage: true,
	})
	routes.SetupStub(stub, cfg, logger)

	errc := make(chan error, 2)
	go serve(stub, cfg.APIPort, "stub", logger, errc)
	go serve(web, cfg.WebPort, "web", logger, errc)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down servers")
	case err = <-errc:
		logger.Error("Listener stopped", zap.Error(err))
	}

	for _, app := range []*fiber.App{web, stub} {
		if shutdownErr := app.Shutdown(); shutdownErr != nil {
			logger.Error("Error during shutdown", zap.Error(shutdownErr))
		}
	}
	logger.Info("Servers stopped gracefully")
	return err
}

func serve(app *fiber.App, port, name string, logger *zap.Logger, errc chan<- error) {
	logger.Info("Server starting", zap.String("listener", name), zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		errc <- fmt.Errorf("%s listener: %w", name, err)
	}
}
