package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/prodline/tpm-service/internal/api/http"
	"github.com/prodline/tpm-service/internal/api/http/handlers"
	"github.com/prodline/tpm-service/internal/auth"
	"github.com/prodline/tpm-service/internal/config"
	"github.com/prodline/tpm-service/internal/events"
	"github.com/prodline/tpm-service/internal/observability"
	"github.com/prodline/tpm-service/internal/persistence"
	"github.com/prodline/tpm-service/internal/repository"
	"github.com/prodline/tpm-service/internal/service"
	"github.com/prodline/tpm-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	ticketLogRepo := repository.NewTicketLogRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	lineAreaRepo := repository.NewLineAreaRepository(pool)
	technicianRepo := repository.NewTechnicianRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		TicketLogRepo:  ticketLogRepo,
		LineAreaRepo:   lineAreaRepo,
		TechnicianRepo: technicianRepo,
		Dispatcher:     dispatcher,
	})
	referenceService := service.NewReferenceService(service.ReferenceDependencies{
		DepartmentRepo: departmentRepo,
		LineAreaRepo:   lineAreaRepo,
		TechnicianRepo: technicianRepo,
	})
	authService := service.NewAuthService(cfg.Auth, adminRepo)
	dashboardService := service.NewDashboardService(ticketRepo, redis.ClientHandle(), cfg.Dashboard.CacheTTL(), logger)
	dashboardService.RegisterInvalidation(dispatcher)

	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AdminTickets:   handlers.NewAdminTicketsHandler(ticketService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Reference:      handlers.NewReferenceHandler(referenceService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
