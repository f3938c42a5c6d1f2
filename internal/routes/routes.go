// Package routes wires the HTTP handlers and middleware onto a fiber app.
package routes

import (
	"github.com/cgultunca/moneybox-withdrawal/internal/config"
	"github.com/cgultunca/moneybox-withdrawal/internal/handlers"
	"github.com/cgultunca/moneybox-withdrawal/internal/middleware"
	"github.com/cgultunca/moneybox-withdrawal/internal/services/transfer"
	"github.com/cgultunca/moneybox-withdrawal/internal/services/withdraw"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Dependencies holds what SetupRoutes needs to build the handlers.
type Dependencies struct {
	Accounts  handlers.AccountReader
	Withdraw  withdraw.Service
	Transfer  transfer.Service
	Health    map[string]handlers.HealthCheckFunc
	JWTSecret string
	RateLimit config.RateLimitConfig
	Logger    *zap.Logger
}

// SetupRoutes registers the public health endpoint and the authenticated
// /api group. Money-moving endpoints are rate limited.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	healthHandler := handlers.NewHealthHandler(deps.Health)
	accountHandler := handlers.NewAccountHandler(deps.Accounts, deps.Withdraw, logger)
	transferHandler := handlers.NewTransferHandler(deps.Transfer, logger)
	authMiddleware := middleware.NewAuthMiddleware(deps.JWTSecret, logger)
	rateLimit := middleware.RateLimit(deps.RateLimit)

	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api", authMiddleware.Handler)

	accounts := api.Group("/accounts")
	accounts.Get("/:id", accountHandler.GetAccount)
	accounts.Post("/:id/withdraw", rateLimit, accountHandler.Withdraw)

	api.Post("/transfers", rateLimit, transferHandler.Transfer)
}
