package withdraw

import (
	"context"

	"github.com/cgultunca/moneybox-withdrawal/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStore loads and persists the account being debited.
type AccountStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
}

// Service withdraws money from a single account.
type Service interface {
	Execute(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) error
}
