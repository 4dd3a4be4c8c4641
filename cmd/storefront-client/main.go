package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-client/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-client/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/gateway"
	"github.com/aaravmahajanofficial/storefront-client/internal/health"
	"github.com/aaravmahajanofficial/storefront-client/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-client/internal/promotion"
	"github.com/aaravmahajanofficial/storefront-client/internal/session"
	"github.com/aaravmahajanofficial/storefront-client/internal/telemetry"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Session store: redis when configured, in-memory otherwise
	var sessions session.Store

	if cfg.RedisConnect.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConnect.GetAddr(),
			Password: cfg.RedisConnect.Password,
			DB:       cfg.RedisConnect.DB,
		})
		sessions = session.NewRedisStore(redisClient, uuid.NewString())
	} else {
		sessions = session.NewMemoryStore()
	}

	defer func() {
		if err := sessions.Close(); err != nil {
			slog.Error("⚠️ Error closing session store", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Session store closed")
		}
	}()

	promoTable := cfg.Promotions
	if len(promoTable) == 0 {
		promoTable = promotion.DefaultTable()
	}

	catalogClient := catalog.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	if err := catalogClient.Refresh(context.Background()); err != nil {
		// served stale (empty) until the next refresh; the process still starts
		slog.Warn("⚠️ Initial catalog refresh failed", slog.String("error", err.Error()))
	}

	orderGateway := gateway.NewHTTPGateway(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	shopperSession := handlers.NewSession(promotion.NewEngine(promoTable))

	catalogHandler := handlers.NewCatalogHandler(catalogClient)
	cartHandler := handlers.NewCartHandler(shopperSession, catalogClient, cfg.Pricing)
	checkoutHandler := handlers.NewCheckoutHandler(shopperSession, orderGateway, sessions, cfg.Pricing)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storefront client initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/catalog/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/catalog/products/{id}", catalogHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/catalog/categories", catalogHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/catalog/categories/{id}/products", catalogHandler.CategoryProducts())
	routerMux.HandleFunc("POST /api/v1/catalog/refresh", catalogHandler.Refresh())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/cart/promotion", cartHandler.ApplyPromotion())
	routerMux.HandleFunc("DELETE /api/v1/cart/promotion", cartHandler.RemovePromotion())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Begin())
	routerMux.HandleFunc("GET /api/v1/checkout", checkoutHandler.GetState())
	routerMux.HandleFunc("PUT /api/v1/checkout/address", checkoutHandler.SetAddress())
	routerMux.HandleFunc("POST /api/v1/checkout/advance", checkoutHandler.Advance())
	routerMux.HandleFunc("POST /api/v1/checkout/back", checkoutHandler.Back())
	routerMux.HandleFunc("PUT /api/v1/checkout/payment", checkoutHandler.SetPayment())
	routerMux.HandleFunc("POST /api/v1/checkout/submit", checkoutHandler.Submit())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

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

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}

}
