package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asiaagro/silage-backend/internal/auth"
	"github.com/asiaagro/silage-backend/internal/cache"
	"github.com/asiaagro/silage-backend/internal/config"
	"github.com/asiaagro/silage-backend/internal/database"
	"github.com/asiaagro/silage-backend/internal/db"
	"github.com/asiaagro/silage-backend/internal/handlers"
	"github.com/asiaagro/silage-backend/internal/health"
	h "github.com/asiaagro/silage-backend/internal/http"
	"github.com/asiaagro/silage-backend/internal/middleware"
	"github.com/asiaagro/silage-backend/internal/monitoring"
	"github.com/asiaagro/silage-backend/internal/repositories"
	"github.com/asiaagro/silage-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	monitorPort := flag.Int("monitor-port", 9090, "Monitoring dashboard port, 0 disables")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; everything degrades to the database without it.
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (summaries will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	migrator := database.NewMigrator(pool)
	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer migrateCancel()
	if err := migrator.RunMigrations(migrateCtx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)

	var monitorServer *monitoring.Server
	if *monitorPort != 0 {
		monitorServer = monitoring.NewServer(pool, *monitorPort)
		go monitorServer.Start()
	}

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	stockOutRepo := repositories.NewStockOutRepository(pool)
	bunkerRepo := repositories.NewBunkerRepository(pool)
	bunkerPurchaseRepo := repositories.NewBunkerPurchaseRepository(pool)
	bunkerSaleRepo := repositories.NewBunkerSaleRepository(pool)
	bunkerExpenseRepo := repositories.NewBunkerExpenseRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	sparePartRepo := repositories.NewSparePartRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	stockService := services.NewStockService(stockRepo, stockOutRepo)
	bunkerService := services.NewBunkerService(bunkerRepo, bunkerPurchaseRepo, bunkerSaleRepo, bunkerExpenseRepo)
	invoiceService := services.NewInvoiceService()
	archiveService := services.NewArchiveService(cfg)
	saleService := services.NewSaleService(saleRepo, invoiceService, archiveService)
	expenseService := services.NewExpenseService(expenseRepo)
	sparePartService := services.NewSparePartService(sparePartRepo)
	summaryService := services.NewSummaryService(stockService, saleService, expenseService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	stockHandler := handlers.NewStockHandler(stockService)
	bunkerHandler := handlers.NewBunkerHandler(bunkerService)
	saleHandler := handlers.NewSaleHandler(saleService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	sparePartHandler := handlers.NewSparePartHandler(sparePartService)
	dashboardHandler := handlers.NewDashboardHandler(summaryService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		stockHandler,
		bunkerHandler,
		saleHandler,
		expenseHandler,
		sparePartHandler,
		dashboardHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := newHTTPServer(addr, handler)

	go func() {
		log.Printf("[Server] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Drain in-flight requests on SIGINT/SIGTERM before exiting.
	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-signalCtx.Done()
	log.Println("[Server] shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Server] forced shutdown: %v", err)
	}
	if monitorServer != nil {
		if err := monitorServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[Monitoring] forced shutdown: %v", err)
		}
	}
}

// newHTTPServer wraps a handler with the connection timeouts the API
// enforces so a stalled client cannot hold a connection open.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
