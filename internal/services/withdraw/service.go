package withdraw

import (
	"context"
	"fmt"

	"github.com/cgultunca/moneybox-withdrawal/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	accounts AccountStore
	notifier models.Notifier
	logger   *zap.Logger
}

// NewService creates a new withdraw service instance.
func NewService(accounts AccountStore, notifier models.Notifier, logger *zap.Logger) Service {
	if accounts == nil {
		panic("account store is required")
	}
	if notifier == nil {
		panic("notifier is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		accounts: accounts,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute debits amount from the account. Nothing is mutated or persisted
// when the balance cannot cover it.
func (s *service) Execute(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to load account %s: %w", accountID, err)
	}

	if _, err := account.CheckWithdrawalAvailability(amount); err != nil {
		s.logger.Warn("withdrawal rejected",
			zap.String("account_id", accountID.String()),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
		return err
	}

	account.ApplyWithdrawal(ctx, amount, s.notifier)

	if err := s.accounts.Update(ctx, account); err != nil {
		s.logger.Error("failed to persist withdrawal", zap.String("account_id", accountID.String()), zap.Error(err))
		return fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.logger.Info("withdrawal completed",
		zap.String("account_id", accountID.String()),
		zap.String("amount", amount.String()),
		zap.String("balance", account.Balance.String()),
	)
	return nil
}
