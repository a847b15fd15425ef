package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/slotfleet/maintenance-service/internal/api/http"
	"github.com/slotfleet/maintenance-service/internal/api/http/handlers"
	"github.com/slotfleet/maintenance-service/internal/auth"
	"github.com/slotfleet/maintenance-service/internal/config"
	"github.com/slotfleet/maintenance-service/internal/events"
	"github.com/slotfleet/maintenance-service/internal/observability"
	"github.com/slotfleet/maintenance-service/internal/persistence"
	"github.com/slotfleet/maintenance-service/internal/repository"
	"github.com/slotfleet/maintenance-service/internal/service"
	"github.com/slotfleet/maintenance-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	machineRepo := repository.NewMachineRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	supplierRepo := repository.NewSupplierRepository(pool)
	technicianRepo := repository.NewTechnicianRepository(pool)
	partRepo := repository.NewPartRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)
	reportRepo := repository.NewClientReportRepository(pool)
	orderRepo := repository.NewWorkOrderRepository(pool)
	maintenanceRepo := repository.NewMaintenanceRepository(pool)
	financeRepo := repository.NewFinanceRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, userRepo)
	machineService := service.NewMachineService(machineRepo, locationRepo, supplierRepo, userRepo)
	locationService := service.NewLocationService(locationRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	technicianService := service.NewTechnicianService(technicianRepo)
	partService := service.NewPartService(partRepo, supplierRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, partRepo, locationRepo)
	reportService := service.NewReportService(reportRepo, machineRepo, dispatcher)
	orderService := service.NewWorkOrderService(orderRepo, machineRepo, reportRepo, dispatcher)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, orderRepo, technicianRepo, dispatcher)
	financeService := service.NewFinanceService(financeRepo, userRepo, machineRepo, redis.Client, cfg.App.Name)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS.Origins, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Machines:       handlers.NewMachinesHandler(machineService),
		Reports:        handlers.NewReportsHandler(reportService),
		WorkOrders:     handlers.NewWorkOrdersHandler(orderService),
		Maintenance:    handlers.NewMaintenanceHandler(maintenanceService),
		Suppliers:      handlers.NewSuppliersHandler(supplierService),
		Locations:      handlers.NewLocationsHandler(locationService),
		Technicians:    handlers.NewTechniciansHandler(technicianService),
		Parts:          handlers.NewPartsHandler(partService),
		Inventory:      handlers.NewInventoryHandler(inventoryService),
		Finance:        handlers.NewFinanceHandler(financeService),
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
