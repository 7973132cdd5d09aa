package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Up14/youtube-video-transcriptor/internal/config"
	"github.com/Up14/youtube-video-transcriptor/internal/history"
	"github.com/Up14/youtube-video-transcriptor/internal/logging"
	"github.com/Up14/youtube-video-transcriptor/internal/metrics"
	"github.com/Up14/youtube-video-transcriptor/internal/middleware"
	"github.com/Up14/youtube-video-transcriptor/internal/quota"
	"github.com/Up14/youtube-video-transcriptor/internal/service"
	"github.com/Up14/youtube-video-transcriptor/internal/tracing"
	"github.com/Up14/youtube-video-transcriptor/internal/youtube"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize tracing
	if cfg.Tracing.Enabled {
		_, closer, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize tracer, continuing without tracing")
		} else {
			defer closer.Close()
			logger.Info("Tracing initialized")
		}
	}

	// Initialize JWT secret from config
	if cfg.Auth.Enabled {
		middleware.SetJWTSecret(cfg.Auth.JWTSecret)
		logger.Info("JWT authentication configured")
	}

	// Optional shared quota counters
	var quotaStore *quota.Store
	if cfg.Redis.Enabled {
		quotaStore, err = quota.New(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer quotaStore.Close()
		logger.Info("Quota store connected")
	}

	// Optional request history
	var historyStore *history.Store
	if cfg.History.Enabled {
		historyStore, err = history.New(context.Background(), cfg.History.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to history database: %v", err)
		}
		defer historyStore.Close()

		if err := historyStore.Init(context.Background()); err != nil {
			log.Fatalf("Failed to initialize history table: %v", err)
		}
		logger.Info("Request history enabled")
	}

	// Standalone metrics server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics.Port)
		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.WithError(err).Error("Metrics server failed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			metricsServer.Shutdown(ctx)
		}()
		logger.Infof("Metrics server listening on :%d", cfg.Metrics.Port)
	}

	// Wire the caption service
	fetcher := youtube.NewClient(cfg.YouTube)
	svc := service.New(fetcher, logger)

	api := &API{
		service: svc,
		history: historyStore,
		quota:   quotaStore,
		logger:  logger,
	}

	router := setupRouter(api, cfg, logger, quotaStore)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

func setupRouter(api *API, cfg *config.Config, logger *logging.Logger, quotaStore *quota.Store) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", api.healthCheck)

	// API routes
	v1 := router.Group("/api/v1")

	if cfg.Auth.Enabled {
		v1.Use(middleware.JWTAuth())
	}

	rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	v1.Use(middleware.RateLimit(rl))

	if quotaStore != nil {
		v1.Use(middleware.DailyQuota(quotaStore, cfg.RateLimit.PerUserDaily))
	}

	{
		v1.POST("/captions", api.convertCaptions)
		v1.GET("/captions/languages", api.listLanguages)
		v1.GET("/history", api.recentHistory)
	}

	return router
}
