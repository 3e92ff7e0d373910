package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"wms-backend/internal/auth"
	"wms-backend/internal/cache"
	"wms-backend/internal/config"
	"wms-backend/internal/database"
	"wms-backend/internal/db"
	"wms-backend/internal/handlers"
	"wms-backend/internal/health"
	apphttp "wms-backend/internal/http"
	"wms-backend/internal/middleware"
	"wms-backend/internal/monitoring"
	"wms-backend/internal/repositories"
	"wms-backend/internal/services"
	"wms-backend/internal/storage"
	"wms-backend/internal/ws"
	"wms-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, running without cache: %v", err)
	}

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}
	if store == nil {
		log.Println("[Storage] object storage not configured, photo uploads disabled")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	clientRepo := repositories.NewClientRepository(pool)
	warehouseRepo := repositories.NewWarehouseRepository(pool)
	sectionRepo := repositories.NewSectionRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	inventoryRepo := repositories.NewSectionInventoryRepository(pool)
	arrivalRepo := repositories.NewTruckArrivalRepository(pool)
	itemRepo := repositories.NewTruckItemRepository(pool)
	checkRepo := repositories.NewQualityCheckRepository(pool)
	sessionRepo := repositories.NewPutawaySessionRepository(pool)
	eventRepo := repositories.NewArrivalEventRepository(pool)
	deliveryRepo := repositories.NewDeliveryRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	reconcileStore := repositories.NewReconcileStore(pool)

	// Live delivery tracking hub
	hub := ws.NewDeliveryHub()
	go hub.Run()

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	totpSvc := services.NewTOTPService(userRepo, cfg.JWT.Issuer)
	userSvc := services.NewUserService(userRepo, jwtManager, totpSvc)
	clientSvc := services.NewClientService(clientRepo)
	warehouseSvc := services.NewWarehouseService(warehouseRepo, sectionRepo, inventoryRepo)
	ledgerSvc := services.NewSectionLedgerService(sectionRepo)
	reconcilerSvc := services.NewReconcilerService(reconcileStore)
	productSvc := services.NewProductService(productRepo, sectionRepo, inventoryRepo, reconcilerSvc)
	workflowSvc := services.NewPutawayWorkflowService(sessionRepo, arrivalRepo, itemRepo, checkRepo, eventRepo, reconcilerSvc)
	arrivalSvc := services.NewTruckArrivalService(arrivalRepo, eventRepo)
	deliverySvc := services.NewDeliveryService(deliveryRepo, hub)
	invoiceSvc := services.NewInvoiceService(invoiceRepo, clientRepo)
	reportSvc := services.NewReportService(sectionRepo, inventoryRepo, arrivalRepo, itemRepo)

	// Handlers
	h := &apphttp.Handlers{
		Auth:      handlers.NewAuthHandler(userSvc),
		Users:     handlers.NewUserHandler(userSvc),
		TOTP:      handlers.NewTOTPHandler(totpSvc),
		Clients:   handlers.NewClientHandler(clientSvc),
		Warehouse: handlers.NewWarehouseHandler(warehouseSvc, ledgerSvc),
		Products:  handlers.NewProductHandler(productSvc),
		Arrivals:  handlers.NewArrivalHandler(workflowSvc, arrivalSvc, store),
		Delivery:  handlers.NewDeliveryHandler(deliverySvc),
		Invoices:  handlers.NewInvoiceHandler(invoiceSvc),
		Reports:   handlers.NewReportHandler(reportSvc),
		Health:    handlers.NewHealthHandler(health.NewHealthChecker(pool)),
	}

	authMw := middleware.NewAuthMiddleware(jwtManager, userRepo)
	router := apphttp.NewRouter(cfg, h, authMw, hub)

	// Ops dashboard on the side port
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("[Server] listening on %s", addr)
	log.Fatal(srv.ListenAndServe())
}
