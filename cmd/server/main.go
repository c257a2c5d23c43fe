// Package main is the entry point for the CRM API server.
// It loads configuration, connects storage, mounts routes
// and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"mcacrm/internal/config"
	applog "mcacrm/internal/logger"
	"mcacrm/internal/middleware"
	"mcacrm/internal/repositories"
	"mcacrm/internal/repositories/cache"
	"mcacrm/internal/routes"
	"mcacrm/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	if err := applog.InitLogger(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer applog.Sync()
	lg := applog.Named("server")

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(cfg); err != nil {
		lg.Fatal("database initialization failed", zap.Error(err))
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		lg.Fatal("failed to get database instance", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		lg.Fatal("failed to ping database", zap.Error(err))
	}
	lg.Info("connected to database", zap.String("driver", cfg.Database.Driver))

	// Clear cached summaries left by a previous release on startup
	if err := repositories.CacheService.HealthCheck(context.Background()); err != nil {
		lg.Warn("redis unavailable, portfolio summary will not be cached", zap.Error(err))
	} else if err := repositories.CacheService.DeleteByPattern(context.Background(), cache.NamespacePattern()); err != nil {
		lg.Warn("failed to clear redis cache", zap.Error(err))
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			stats := sqlDB.Stats()
			lg.Debug("db pool stats",
				zap.Int("open", stats.OpenConnections),
				zap.Int("idle", stats.Idle),
				zap.Int("in_use", stats.InUse),
				zap.Int64("wait_count", stats.WaitCount),
				zap.Duration("wait_duration", stats.WaitDuration))
		}
	}()

	defer func() {
		if err := sqlDB.Close(); err != nil {
			lg.Warn("failed to close database connection", zap.Error(err))
		}
		if err := repositories.CacheService.Close(); err != nil {
			lg.Warn("failed to close redis connection", zap.Error(err))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := fiber.New(fiber.Config{
		AppName: "mcacrm",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return response.Error(c, fe.Code, fe.Message)
			}
			return response.ServerError(c, "Internal server error")
		},
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Recovery())

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: !strings.Contains(cfg.CORSOrigins, "*"),
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// SSN lookups are rate limited per client.
	app.Use("/api/v1/principals/search-ssn", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	}))

	if err := routes.SetupRoutes(app, routes.Dependencies{
		DB:       repositories.DB,
		Cache:    repositories.CacheService,
		Config:   cfg,
		Registry: registry,
	}); err != nil {
		lg.Fatal("failed to set up routes", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		lg.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			lg.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	lg.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		lg.Error("server stopped", zap.Error(err))
	}
}
