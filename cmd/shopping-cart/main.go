package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/areejrazzaq/shopping-cart/internal/api/handlers"
	"github.com/areejrazzaq/shopping-cart/internal/api/middleware"
	"github.com/areejrazzaq/shopping-cart/internal/cache"
	"github.com/areejrazzaq/shopping-cart/internal/config"
	"github.com/areejrazzaq/shopping-cart/internal/health"
	"github.com/areejrazzaq/shopping-cart/internal/metrics"
	repository "github.com/areejrazzaq/shopping-cart/internal/repositories"
	service "github.com/areejrazzaq/shopping-cart/internal/services"
	"github.com/areejrazzaq/shopping-cart/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if err := repos.Migrate(context.Background()); err != nil {
		slog.Error("❌ Error migrating database schema", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	jwtKey := []byte(cfg.Security.JWTKey)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	notifier := service.NewNotificationService(repos.Product, emailService, cfg.SendGrid.AdminEmail, cfg.Store.LowStockThreshold)
	productService := service.NewProductService(repos.Product, productCache, cfg.Cache.ProductTTL)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Product, cfg.Store.ImageBaseURL)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(repos.Cart, repos.Product, repos.Order, repos, notifier)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(repos.Order)
	reportService := service.NewReportService(repos.Order, emailService, cfg.SendGrid.AdminEmail)
	reportHandler := handlers.NewReportHandler(reportService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error building health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PATCH /api/v1/carts/items/{id}", authMiddleware.Authenticate(cartHandler.UpdateItemQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("POST /api/v1/admin/reports/daily", authMiddleware.Authenticate(reportHandler.TriggerDailyReport()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	go runDailyReportScheduler(schedulerCtx, reportService, cfg.Store.ReportHour)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	stopScheduler()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}

// runDailyReportScheduler fires the daily report once a day at the
// configured hour, local time.
func runDailyReportScheduler(ctx context.Context, reports service.ReportService, hour int) {

	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())

		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		reportCtx, cancel := context.WithTimeout(ctx, time.Minute)

		if _, err := reports.SendDailyReport(reportCtx); err != nil {
			slog.Error("Daily report run failed", slog.String("error", err.Error()))
		}

		cancel()
	}
}
