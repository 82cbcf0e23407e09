package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/epeers/tracker/config"
	_ "github.com/epeers/tracker/docs"
	"github.com/epeers/tracker/internal/bundesbank"
	"github.com/epeers/tracker/internal/cache"
	"github.com/epeers/tracker/internal/eia"
	"github.com/epeers/tracker/internal/handlers"
	"github.com/epeers/tracker/internal/metrics"
	"github.com/epeers/tracker/internal/middleware"
	"github.com/epeers/tracker/internal/services"
	"github.com/epeers/tracker/internal/yahoo"
)

// @title Brent/WTI Spread Tracker API
// @version 1.0
// @description Calibrated Brent/WTI spread and auxiliary market quotes for the tracker dashboards.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	configureLogging(cfg)

	if cfg.EIAKey == "" {
		log.Warn("EIA_API_KEY is not set; calibration requests will fail with configuration_error")
	}

	// Create context for initialization
	ctx := context.Background()

	reg := metrics.NewRegistry()

	// Initialize upstream clients
	yahooClient := yahoo.NewClient(reg)
	eiaClient := eia.NewClient(cfg.EIAKey, reg)
	bbClient := bundesbank.NewClient(reg)

	// Initialize cache
	readCache := cache.New(ctx, cfg.RedisAddr)

	// Initialize services
	acqSvc := services.NewAcquisitionService(yahooClient, eiaClient, bbClient, readCache, reg)
	calibrationSvc := services.NewCalibrationService(acqSvc, cfg.Tracker, reg)
	marketSvc := services.NewMarketService(acqSvc, cfg.Tracker.Currencies)

	// Initialize handlers
	spreadHandler := handlers.NewSpreadHandler(calibrationSvc)
	marketHandler := handlers.NewMarketHandler(marketSvc)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.Metrics(reg))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Data routes
	api := router.Group("/api", middleware.CacheControl(cfg.CacheMaxAge))
	api.GET("/brent-wti/calibrated", spreadHandler.GetCalibrated)
	api.GET("/currencies", marketHandler.GetCurrencies)
	api.GET("/bund-yield", marketHandler.GetBundYield)

	// Operations
	router.GET("/metrics", gin.WrapH(reg.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 20 seconds to complete; upstream timeouts are at most 15s
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if level >= log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}
