package repositories

import (
	"context"

	"github.com/cgultunca/moneybox-withdrawal/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CachedAccountRepository fronts an AccountRepository with a cache.
// Reads populate the cache on a miss; a successful Update refreshes the
// entry and a failed one evicts it. Cache errors are logged, never returned.
type CachedAccountRepository struct {
	next   AccountRepository
	cache  CacheRepository
	logger *zap.Logger
}

func NewCachedAccountRepository(next AccountRepository, cache CacheRepository, logger *zap.Logger) *CachedAccountRepository {
	return &CachedAccountRepository{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedAccountRepository) Create(ctx context.Context, account *models.Account) error {
	return r.next.Create(ctx, account)
}

func (r *CachedAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	key := r.key(id)

	var cached models.Account
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("account cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return &cached, nil
	}

	account, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, account); err != nil {
		r.logger.Warn("account cache write failed", zap.String("key", key), zap.Error(err))
	}
	return account, nil
}

// GetByOwnerID is not cached.
func (r *CachedAccountRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Account, error) {
	return r.next.GetByOwnerID(ctx, ownerID)
}

func (r *CachedAccountRepository) Update(ctx context.Context, account *models.Account) error {
	key := r.key(account.ID)

	if err := r.next.Update(ctx, account); err != nil {
		if delErr := r.cache.Delete(ctx, key); delErr != nil {
			r.logger.Warn("account cache eviction failed", zap.String("key", key), zap.Error(delErr))
		}
		return err
	}

	if err := r.cache.Set(ctx, key, account); err != nil {
		r.logger.Warn("account cache refresh failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (r *CachedAccountRepository) key(id uuid.UUID) string {
	return r.cache.GenerateKey("account", "id", id)
}
