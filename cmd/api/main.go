package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/alliance-shipping/backoffice/internal/api/http"
	"github.com/alliance-shipping/backoffice/internal/api/http/handlers"
	"github.com/alliance-shipping/backoffice/internal/auth"
	"github.com/alliance-shipping/backoffice/internal/config"
	"github.com/alliance-shipping/backoffice/internal/events"
	"github.com/alliance-shipping/backoffice/internal/observability"
	"github.com/alliance-shipping/backoffice/internal/persistence"
	"github.com/alliance-shipping/backoffice/internal/repository"
	"github.com/alliance-shipping/backoffice/internal/service"
	"github.com/alliance-shipping/backoffice/internal/session"
	"github.com/alliance-shipping/backoffice/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if _, err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	shipmentRepo := repository.NewShipmentRepository(pool)
	shipmentEventRepo := repository.NewShipmentEventRepository(pool)
	contactRepo := repository.NewContactMessageRepository(pool)

	sessions := session.NewManager(
		session.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL()),
		session.NewRedisStore(redis.Client),
	)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		AdminRepo:  adminRepo,
		Sessions:   sessions,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	adminService := service.NewAdminService(*cfg, service.AdminDependencies{
		UserRepo:  userRepo,
		AdminRepo: adminRepo,
	})
	shipmentService := service.NewShipmentService(*cfg, service.ShipmentDependencies{
		ShipmentRepo: shipmentRepo,
		EventRepo:    shipmentEventRepo,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
		Logger:       logger,
	})
	contactService := service.NewContactService(contactRepo, dispatcher, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:      handlers.NewAuthHandler(authService, cfg.Auth),
		Shipments: handlers.NewShipmentsHandler(shipmentService),
		Contact:   handlers.NewContactHandler(contactService),
		Accounts:  handlers.NewAccountsHandler(adminService),
		Dashboard: handlers.NewDashboardHandler(shipmentService, contactService),
		Gate:      auth.NewSessionGate(sessions, cfg.Auth.CookieName, cfg.Auth.LoginPath, logger),
		Metrics:   metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
