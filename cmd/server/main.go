package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/study-assistant-api/configs"
	"github.com/avatarctic/study-assistant-api/internal/application/services"
	"github.com/avatarctic/study-assistant-api/internal/core/ports"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/health"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/hostmem"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver"
	customMiddleware "github.com/avatarctic/study-assistant-api/internal/infrastructure/httpserver/middleware"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/memcache"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/observability"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/pool"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/redis"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/repositories"
	"github.com/avatarctic/study-assistant-api/internal/infrastructure/summarizer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting study assistant API...")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Observability: metrics on the default registry, signals through the notifier
	metrics := observability.NewMetrics(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)
	notifier := observability.NewNotifier(logger, cfg.Memory.NotifierBuffer, metrics)
	defer notifier.Close()
	instrumenter := observability.NewInstrumenter(notifier, metrics, logger, cfg.Memory.OperationWarnBytes)

	// Process-local cache and bounded resource pool
	cache := memcache.New(cfg.Cache.MaxEntries)
	resourcePool := pool.New(pool.Config{
		MaxConnections: cfg.Pool.MaxConnections,
		AcquireTimeout: cfg.Pool.AcquireTimeout,
	}, pool.WithLogger(logger), pool.WithSignalSink(notifier))
	metrics.RegisterCacheStats(cache.Stats)
	metrics.RegisterPoolStats(resourcePool.Stats)

	guard := services.NewPressureGuard(hostmem.NewReader(), cache, notifier, metrics, services.PressureGuardConfig{
		Threshold:      cfg.Memory.PressureThreshold,
		SampleInterval: cfg.Memory.SampleInterval,
	}, logger)
	go guard.Run(ctx)

	hcSlice := []ports.HealthChecker{health.NewPoolHealthChecker(resourcePool)}

	// Redis only backs the shared rate limiter; without it the in-process limiter is used
	var rateLimiterService ports.RateLimiterService
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		logger.Info("Connected to Redis successfully")

		rateLimiterService = services.NewRateLimiterService(
			repositories.NewRateLimitRedisRepository(redisClient),
			&services.RateLimiterConfig{
				Requests:  cfg.RateLimit.Requests,
				Window:    cfg.RateLimit.Window,
				KeyPrefix: cfg.RateLimit.KeyPrefix,
			},
			logger,
		)
		hcSlice = append(hcSlice, health.NewRedisHealthChecker(redisClient))
	}

	// Simulated backing stores share the pool
	reminderRepo := repositories.NewReminderRepository(resourcePool, cfg.Pool.StoreLatency)
	summaryRepo := repositories.NewSummaryRepository(resourcePool, cfg.Pool.StoreLatency)
	userRepo := repositories.NewUserRepository(resourcePool, cfg.Pool.StoreLatency)

	authService := services.NewAuthService(&cfg.JWT, logger)
	reminderService := services.NewReminderService(reminderRepo, cache, logger)
	summaryService := services.NewSummaryService(summaryRepo, summarizer.NewSimulated(cfg.Summary.GenerationLatency), cache, logger)
	userService := services.NewUserService(userRepo, cache, logger)

	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		BodyLimit:      cfg.Server.BodyLimit,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
	}

	deps := httpserver.ServerDeps{
		AuthService:        authService,
		ReminderService:    reminderService,
		SummaryService:     summaryService,
		UserService:        userService,
		RateLimiterService: rateLimiterService,
		RateLimit: customMiddleware.RateLimitSettings{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		},
		Cache:          cache,
		Pool:           resourcePool,
		PressureGuard:  guard,
		Instrumenter:   instrumenter,
		Metrics:        metrics,
		HealthCheckers: hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	closeCtx, cancelClose := context.WithTimeout(context.Background(), cfg.Pool.CloseTimeout)
	defer cancelClose()
	if err := resourcePool.Close(closeCtx); err != nil {
		logger.WithError(err).Warn("Resource pool did not drain")
	}

	logger.Info("Server exited")
}
