package main

import (
	"flag"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"tovio-backoffice/internal/caching"
	"tovio-backoffice/internal/config"
	"tovio-backoffice/internal/handlers"
	"tovio-backoffice/internal/repositories"
	"tovio-backoffice/internal/services"
	"tovio-backoffice/pkg/database"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *configPath).Msg("failed to load configuration")
	}
	if !cfg.Email.Configured() {
		logger.Warn().Msg("email provider not configured, receipt sends will be reported as failures")
	}

	pool, err := database.NewPool(cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("database connected")

	minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)

	// Repositories
	menuRepo := repositories.NewMenuRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	// Services
	menuSvc := services.NewMenuService(menuRepo, cacheSvc, logger)
	orderSvc := services.NewOrderService(orderRepo, logger)
	invoiceSvc := services.NewInvoiceService(cfg.Company, cfg.Invoice.OutputDir, cfg.Minio.Bucket, minioSvc, logger)
	receiptSvc := services.NewReceiptService(cfg.Email, cfg.Company, logger)

	// Handlers
	healthHandlers := handlers.NewHealthHandlers(pool)
	menuHandlers := handlers.NewMenuHandlers(menuSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc, orderSvc)
	receiptHandlers := handlers.NewReceiptHandlers(receiptSvc, orderSvc)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	v1.GET("/menu-items", menuHandlers.ListMenuItems)
	v1.POST("/menu-items", menuHandlers.CreateMenuItem)
	v1.GET("/menu-items/feed", menuHandlers.MenuFeed)
	v1.GET("/menu-items/:id", menuHandlers.GetMenuItemByID)
	v1.PUT("/menu-items/:id", menuHandlers.UpdateMenuItem)
	v1.DELETE("/menu-items/:id", menuHandlers.DeleteMenuItem)

	v1.GET("/orders", orderHandlers.ListOrders)
	v1.POST("/orders", orderHandlers.CreateOrder)
	v1.GET("/orders/:id", orderHandlers.GetOrderByID)
	v1.PUT("/orders/:id", orderHandlers.UpdateOrder)
	v1.DELETE("/orders/:id", orderHandlers.DeleteOrder)

	v1.GET("/orders/:id/invoice", invoiceHandlers.GetInvoice)
	v1.POST("/orders/:id/invoice/upload", invoiceHandlers.UploadInvoice)
	v1.POST("/orders/:id/receipt", receiptHandlers.SendReceipt)

	logger.Info().Str("port", cfg.Server.Port).Msg("server starting")
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
