package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phonevilla/store_api/internal/cache"
	"github.com/phonevilla/store_api/internal/config"
	"github.com/phonevilla/store_api/internal/handler"
	"github.com/phonevilla/store_api/internal/middleware"
	"github.com/phonevilla/store_api/internal/repository"
	"github.com/phonevilla/store_api/internal/service"
	"github.com/phonevilla/store_api/internal/worker"
	"github.com/phonevilla/store_api/pkg/mobileapi"
	"github.com/phonevilla/store_api/pkg/telegram"
)

// main is the application entrypoint for the PhoneVilla storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting storefront api")

	// 3. Initialize on-disk layout (uploads, config, data)
	if err := initDirectories(cfg); err != nil {
		log.Error().Err(err).Msg("directory initialization failed")
		fmt.Fprintf(os.Stderr, "directory initialization failed: %v\n", err)
		os.Exit(1)
	}

	// 3a. Optional Redis (shared rate limiter backend)
	var redisClient *cache.RedisClient
	if cfg.Redis.Host != "" {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis connection failed - rate limiter falls back to in-process store")
		} else {
			defer redisClient.Close()
			log.Info().Msg("redis connected successfully")
		}
	}

	// 4. Initialize repositories
	configRepo := repository.NewConfigRepository(cfg.StoreConfigPath())
	if err := configRepo.EnsureExists(); err != nil {
		log.Error().Err(err).Msg("store config initialization failed")
		os.Exit(1)
	}
	cartRepo, err := repository.NewCartRepository(filepath.Join(cfg.Paths.DataDir, "cart.json"))
	if err != nil {
		log.Error().Err(err).Msg("cart store initialization failed")
		os.Exit(1)
	}
	orderRepo, err := repository.NewOrderRepository(filepath.Join(cfg.Paths.DataDir, "orders.json"))
	if err != nil {
		log.Error().Err(err).Msg("order store initialization failed")
		os.Exit(1)
	}
	priceRepo, err := repository.NewPriceOverrideRepository(filepath.Join(cfg.Paths.DataDir, "product-prices.json"))
	if err != nil {
		log.Error().Err(err).Msg("price override store initialization failed")
		os.Exit(1)
	}
	settingsRepo := repository.NewSettingsRepository(filepath.Join(cfg.Paths.DataDir, "admin-settings.json"))

	// 5. Initialize services
	screenshotDir := filepath.Join(cfg.Paths.UploadDir, "payment-screenshots")
	qrDir := filepath.Join(cfg.Paths.UploadDir, "qr-codes")
	productImageDir := filepath.Join(cfg.Paths.UploadDir, "product-images")

	catalogSvc := service.NewCatalogService(configRepo, priceRepo)
	cartSvc := service.NewCartService(cartRepo, configRepo)
	orderSvc := service.NewOrderService(orderRepo, catalogSvc)
	settingsSvc := service.NewSettingsService(settingsRepo, configRepo)
	notifierSvc := service.NewNotifierService(telegram.NewClient(), settingsRepo, cfg.Telegram, screenshotDir)
	authSvc, err := service.NewAdminAuthService(cfg.AdminPIN, cfg.JWTSecret)
	if err != nil {
		log.Error().Err(err).Msg("admin auth initialization failed")
		os.Exit(1)
	}

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:       handler.NewHealthHandler(configRepo),
		Catalog:      handler.NewCatalogHandler(catalogSvc),
		Cart:         handler.NewCartHandler(cartSvc),
		Order:        handler.NewOrderHandler(orderSvc, notifierSvc, screenshotDir, cfg.Upload.MaxScreenshotSize),
		Admin:        handler.NewAdminHandler(authSvc, settingsSvc, catalogSvc, qrDir, cfg.Upload.MaxQRSize),
		ProductAdmin: handler.NewProductAdminHandler(catalogSvc, productImageDir, cfg.Upload.MaxScreenshotSize),
	}

	// 7. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(cfg.JWTSecret)
	pinLimiter := middleware.PINRateLimit(redisClient)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw, pinLimiter, cfg.Paths.UploadDir)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start workers
	if cfg.Sync.MobileAPIKey != "" {
		syncSvc := service.NewDeviceSyncService(mobileapi.NewClient(cfg.Sync.MobileAPIKey), configRepo, productImageDir)
		go worker.NewDeviceSyncWorker(syncSvc, cfg.Sync.Interval).Start(ctx)
	}

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *handler.HealthHandler
	Catalog      *handler.CatalogHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Admin        *handler.AdminHandler
	ProductAdmin *handler.ProductAdminHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware, pinLimiter gin.HandlerFunc, uploadDir string) {
	router.GET("/api/health", handlers.Health.GetHealth)

	// Public storefront routes
	router.GET("/api/config", handlers.Catalog.GetConfig)
	router.GET("/api/products", handlers.Catalog.GetProducts)

	cart := router.Group("/api/cart")
	{
		cart.GET("", handlers.Cart.GetCart)
		cart.POST("", handlers.Cart.AddItem)
		cart.PATCH("/:id", handlers.Cart.UpdateItem)
		cart.DELETE("/:id", handlers.Cart.RemoveItem)
		cart.DELETE("", handlers.Cart.ClearCart)
	}

	router.POST("/api/orders", handlers.Order.CreateOrder)
	router.POST("/api/orders/batch", handlers.Order.CreateBatchOrders)
	router.GET("/api/orders/:id", handlers.Order.GetOrder)

	// Admin routes
	admin := router.Group("/api/admin")
	admin.POST("/verify-pin", pinLimiter, handlers.Admin.VerifyPIN)
	admin.Use(jwtMiddleware.Handle())
	{
		admin.GET("/settings", handlers.Admin.GetSettings)
		admin.POST("/settings", handlers.Admin.UpdateSettings)

		admin.GET("/product-prices", handlers.Admin.ListPrices)
		admin.POST("/product-prices", handlers.Admin.SetPrice)
		admin.DELETE("/product-prices/:productId/:storage", handlers.Admin.DeletePrice)

		admin.POST("/products", handlers.ProductAdmin.CreateProduct)
		admin.PUT("/products/:productId", handlers.ProductAdmin.UpdateProduct)
		admin.DELETE("/products/:productId", handlers.ProductAdmin.DeleteProduct)

		admin.POST("/qr-upload", handlers.Admin.UploadQR)
	}

	// Order listing is an admin concern even though it lives under /api/orders
	router.GET("/api/orders", jwtMiddleware.Handle(), handlers.Order.ListOrders)

	// Uploaded screenshots, QR codes and product images
	router.Static("/uploads", uploadDir)
}

// initDirectories creates the flat-file store layout and probes each
// directory for write permission so misconfiguration fails at startup
// instead of on the first checkout.
func initDirectories(cfg *config.Config) error {
	dirs := []string{
		filepath.Join(cfg.Paths.UploadDir, "payment-screenshots"),
		filepath.Join(cfg.Paths.UploadDir, "qr-codes"),
		filepath.Join(cfg.Paths.UploadDir, "product-images"),
		cfg.Paths.ConfigDir,
		cfg.Paths.DataDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		probe := filepath.Join(dir, ".write-test")
		if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
			return fmt.Errorf("directory %s is not writable: %w", dir, err)
		}
		if err := os.Remove(probe); err != nil {
			return fmt.Errorf("failed to clean probe in %s: %w", dir, err)
		}
		log.Debug().Str("dir", dir).Msg("directory ready")
	}
	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
