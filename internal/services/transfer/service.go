package transfer

import (
	"context"
	"fmt"

	"github.com/cgultunca/moneybox-withdrawal/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// service implements the transfer Service interface.
type service struct {
	accounts AccountStore
	notifier models.Notifier
	logger   *zap.Logger
}

// NewService creates a new transfer service instance.
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

// Execute withdraws amount from the source account and pays it into the
// destination. Both checks run against the source account, including the
// pay-in limit check, before either account is touched. The two updates
// are not atomic.
func (s *service) Execute(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) error {
	from, err := s.accounts.GetByID(ctx, fromAccountID)
	if err != nil {
		return fmt.Errorf("failed to load source account %s: %w", fromAccountID, err)
	}
	to, err := s.accounts.GetByID(ctx, toAccountID)
	if err != nil {
		return fmt.Errorf("failed to load destination account %s: %w", toAccountID, err)
	}

	if _, err := from.CheckWithdrawalAvailability(amount); err != nil {
		s.reject(fromAccountID, toAccountID, amount, err)
		return err
	}
	if _, err := from.CheckPayInAvailability(amount); err != nil {
		s.reject(fromAccountID, toAccountID, amount, err)
		return err
	}

	from.ApplyWithdrawal(ctx, amount, s.notifier)
	to.ApplyPayIn(ctx, amount, s.notifier)

	if err := s.accounts.Update(ctx, from); err != nil {
		s.logger.Error("failed to persist source account", zap.String("from_account_id", fromAccountID.String()), zap.Error(err))
		return fmt.Errorf("failed to update source account %s: %w", fromAccountID, err)
	}
	if err := s.accounts.Update(ctx, to); err != nil {
		// The source account is already persisted at this point.
		s.logger.Error("failed to persist destination account",
			zap.String("from_account_id", fromAccountID.String()),
			zap.String("to_account_id", toAccountID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to update destination account %s: %w", toAccountID, err)
	}

	s.logger.Info("transfer completed",
		zap.String("from_account_id", fromAccountID.String()),
		zap.String("to_account_id", toAccountID.String()),
		zap.String("amount", amount.String()),
	)
	return nil
}

func (s *service) reject(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, err error) {
	s.logger.Warn("transfer rejected",
		zap.String("from_account_id", fromAccountID.String()),
		zap.String("to_account_id", toAccountID.String()),
		zap.String("amount", amount.String()),
		zap.Error(err),
	)
}
