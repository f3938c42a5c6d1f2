package transfer

import (
	"context"

	"github.com/cgultunca/moneybox-withdrawal/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStore loads and persists both sides of a transfer.
type AccountStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
}

// Service moves money between two accounts.
type Service interface {
	Execute(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) error
}
