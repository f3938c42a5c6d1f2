// Command seed creates the demo users and accounts used by the API examples.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cgultunca/moneybox-withdrawal/internal/config"
	apperrors "github.com/cgultunca/moneybox-withdrawal/internal/errors"
	applogger "github.com/cgultunca/moneybox-withdrawal/internal/logger"
	"github.com/cgultunca/moneybox-withdrawal/internal/models"
	"github.com/cgultunca/moneybox-withdrawal/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type demoAccount struct {
	Email   string
	Name    string
	Balance decimal.Decimal
}

func demoAccounts() []demoAccount {
	return []demoAccount{
		{Email: config.GetEnv("SEED_FROM_EMAIL", "from@moneybox.com"), Name: "From User", Balance: decimal.NewFromInt(6000)},
		{Email: config.GetEnv("SEED_TO_EMAIL", "to@moneybox.com"), Name: "To User", Balance: decimal.NewFromInt(2000)},
	}
}

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type accountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Account, error)
}

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zapLogger, err := applogger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

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

	users := repositories.NewUserRepository(db)
	accounts := repositories.NewAccountRepository(db)

	ctx := context.Background()
	for _, demo := range demoAccounts() {
		account, created, err := seedAccount(ctx, users, accounts, demo)
		if err != nil {
			zapLogger.Fatal("failed to seed account", zap.String("email", demo.Email), zap.Error(err))
		}
		zapLogger.Info("demo account ready",
			zap.String("email", demo.Email),
			zap.String("account_id", account.ID.String()),
			zap.String("balance", account.Balance.String()),
			zap.Bool("created", created),
		)
	}
}

// seedAccount returns the account owned by demo.Email, creating the user
// and the account when they do not exist yet.
func seedAccount(ctx context.Context, users userStore, accounts accountStore, demo demoAccount) (*models.Account, bool, error) {
	user, err := users.GetByEmail(ctx, demo.Email)
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		user = &models.User{Email: demo.Email, Name: demo.Name}
		if err := users.Create(ctx, user); err != nil {
			return nil, false, err
		}
	case err != nil:
		return nil, false, err
	default:
		existing, err := accounts.GetByOwnerID(ctx, user.ID)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, false, err
		}
	}

	account := &models.Account{
		OwnerID: user.ID,
		Owner:   user,
		Balance: demo.Balance,
	}
	if err := accounts.Create(ctx, account); err != nil {
		return nil, false, fmt.Errorf("failed to create account for %s: %w", demo.Email, err)
	}
	return account, true, nil
}
