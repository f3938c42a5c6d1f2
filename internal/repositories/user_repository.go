package repositories

import (
	"context"

	"github.com/cgultunca/moneybox-withdrawal/internal/models"
)

// UserRepository defines the user operations needed to provision accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
