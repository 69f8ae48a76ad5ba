package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daniarfurniture/finance-api/config"
	"github.com/daniarfurniture/finance-api/handlers"
	"github.com/daniarfurniture/finance-api/middleware"
	"github.com/daniarfurniture/finance-api/routes"
	"github.com/daniarfurniture/finance-api/services"
	"github.com/daniarfurniture/finance-api/store"
	_ "github.com/daniarfurniture/finance-api/store/memory"
	_ "github.com/daniarfurniture/finance-api/store/postgres"
	"github.com/daniarfurniture/finance-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	utils.Configure(cfg.Server.Mode, cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)

	catalog, err := services.LoadCatalog(cfg.Ledger.CatalogFile)
	if err != nil {
		log.Fatal("Failed to load category catalog:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to open store:", err)
	}
	defer st.Close()

	log.Printf("✅ Store %q ready", cfg.Database.Driver)

	wsHandler := handlers.NewWSHandler()
	defer wsHandler.Close()

	txService := services.NewTransactionService(st, catalog, services.TransactionOptions{
		Notifier:        wsHandler,
		ReverseOnDelete: cfg.Ledger.PayableReverseOnDelete,
	})
	reportService := services.NewReportService(st, catalog, services.SystemClock, cfg.Ledger.CompanyName)
	assetService := services.NewAssetService(st, services.SystemClock, wsHandler)
	invoiceService := services.NewInvoiceService(st, wsHandler)
	budgetService := services.NewBudgetService(st, wsHandler)
	employeeService := services.NewEmployeeService(st, services.SystemClock, wsHandler)
	payrollService := services.NewPayrollService(st, services.SystemClock, wsHandler)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{cfg.Server.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimiter(cfg.Server.RateLimit, time.Minute, ctx.Done()))

	if !cfg.AuthEnabled() {
		utils.SafeWarn("⚠️ JWT_SECRET is empty: API is unauthenticated")
	}

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		{
			protected.GET("/ws/ledger", wsHandler.HandleWS)
			routes.SetupTransactionRoutes(protected, txService)
			routes.SetupReportRoutes(protected, reportService)
			routes.SetupCategoryRoutes(protected, catalog)
			routes.SetupAssetRoutes(protected, assetService)
			routes.SetupInvoiceRoutes(protected, invoiceService)
			routes.SetupBudgetRoutes(protected, budgetService)
			routes.SetupEmployeeRoutes(protected, employeeService)
			routes.SetupPayrollRoutes(protected, payrollService)
			routes.SetupAdminRoutes(protected, st, catalog, wsHandler)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		status, code := "healthy", http.StatusOK
		if err := st.Ping(pingCtx); err != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": version,
			"store":   cfg.Database.Driver,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	utils.LogStartup("Daniar Finance API", version, cfg.Server.Port, cfg.Database.Driver)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Forced shutdown: %v", err)
	}
}
