// Package main is the entry point for the moneybox API server.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/cgultunca/moneybox-withdrawal/internal/config"
	"github.com/cgultunca/moneybox-withdrawal/internal/handlers"
	applogger "github.com/cgultunca/moneybox-withdrawal/internal/logger"
	"github.com/cgultunca/moneybox-withdrawal/internal/repositories"
	"github.com/cgultunca/moneybox-withdrawal/internal/repositories/cache"
	"github.com/cgultunca/moneybox-withdrawal/internal/routes"
	"github.com/cgultunca/moneybox-withdrawal/internal/services/notification"
	"github.com/cgultunca/moneybox-withdrawal/internal/services/transfer"
	"github.com/cgultunca/moneybox-withdrawal/internal/services/withdraw"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zapLogger, err := applogger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := cfg.Validate(); err != nil {
		zapLogger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := repositories.NewPostgresDB(cfg.DB)
	if err != nil {
		zapLogger.Fatal("failed to open database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			zapLogger.Warn("failed to close database connection", zap.Error(err))
		}
	}()
	if err := repositories.AutoMigrate(db); err != nil {
		zapLogger.Fatal("failed to migrate database", zap.Error(err))
	}
	zapLogger.Info("connected to database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	cacheService := cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.Redis.TTL)
	defer func() {
		if err := cacheService.Close(); err != nil {
			zapLogger.Warn("failed to close Redis connection", zap.Error(err))
		}
	}()
	if err := cacheService.HealthCheck(context.Background()); err != nil {
		zapLogger.Warn("redis unavailable, account reads will hit the database", zap.Error(err))
	} else if !cfg.IsProduction() {
		if err := cacheService.FlushAll(context.Background()); err != nil {
			zapLogger.Warn("failed to flush Redis cache", zap.Error(err))
		}
	}

	notifier, closeNotifier, err := notification.New(cfg.Notifier, applogger.Component(zapLogger, "notification"))
	if err != nil {
		zapLogger.Fatal("failed to build notifier", zap.String("driver", cfg.Notifier.Driver), zap.Error(err))
	}
	defer func() {
		if err := closeNotifier(); err != nil {
			zapLogger.Warn("failed to close notifier", zap.Error(err))
		}
	}()

	accounts := repositories.NewCachedAccountRepository(
		repositories.NewAccountRepository(db),
		cacheService,
		applogger.Component(zapLogger, "account_cache"),
	)
	withdrawService := withdraw.NewService(accounts, notifier, applogger.Component(zapLogger, "withdraw"))
	transferService := transfer.NewService(accounts, notifier, applogger.Component(zapLogger, "transfer"))

	app := fiber.New(fiber.Config{
		AppName:      "moneybox",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Accounts: accounts,
		Withdraw: withdrawService,
		Transfer: transferService,
		Health: map[string]handlers.HealthCheckFunc{
			"database": func(ctx context.Context) error { return repositories.Ping(ctx, db) },
			"redis":    cacheService.HealthCheck,
		},
		JWTSecret: cfg.JWTSecret,
		RateLimit: cfg.RateLimit,
		Logger:    applogger.Component(zapLogger, "http"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()
	zapLogger.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	<-ctx.Done()
	zapLogger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
