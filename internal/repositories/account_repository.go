package repositories

import (
	"context"

	"github.com/cgultunca/moneybox-withdrawal/internal/models"

	"github.com/google/uuid"
)

// AccountRepository loads and persists accounts. GetByID returns the
// account with its Owner populated.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
}
