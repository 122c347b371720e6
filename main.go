package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/atikur-24/daily-fit-server/internal/auth"
	"github.com/atikur-24/daily-fit-server/internal/config"
	"github.com/atikur-24/daily-fit-server/internal/events"
	"github.com/atikur-24/daily-fit-server/internal/handlers"
	"github.com/atikur-24/daily-fit-server/internal/payment"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
	"github.com/atikur-24/daily-fit-server/internal/repositories/casdoor"
	"github.com/atikur-24/daily-fit-server/internal/repositories/postgres"
	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
	"github.com/atikur-24/daily-fit-server/internal/validator"
	"github.com/atikur-24/daily-fit-server/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(slogLogger)
	logger := utils.NewSlogLogger(slogLogger)

	// Prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, running without cache", "error", err)
			redisClient = nil
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	validator := validator.New()

	publisher, err := events.NewPublisher(cfg.Events, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}

	var identity repositories.IdentityProvider
	if cfg.Casdoor.Enabled() {
		identity = casdoor.NewIdentityCasdoor(cfg.Casdoor)
	}

	// Initialize services
	serviceManager := services.NewServiceManager(repoManager.GetRepository(), slogLogger, validator, services.ServiceManagerConfig{
		Tokens:    auth.NewTokenService(cfg.AccessSecret, cfg.TokenTTL),
		Gateway:   payment.NewStripeGateway(cfg.Payment),
		Publisher: publisher,
		Identity:  identity,
		Currency:  cfg.Payment.Currency,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	metrics := handlers.NewMetrics()
	handlers.SetupMiddleware(router, logger, metrics)

	rateLimit, err := handlers.RateLimitMiddleware(cfg.RateLimit, redisClient, logger)
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}
	router.Use(rateLimit)

	handlers.NewHandlerManager(serviceManager, validator, logger, metrics).SetupRoutes(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "sso_enabled", identity != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}

	// Closes the database and redis connections
	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown repositories", "error", err)
	}

	logger.Info("Server exited")
}
