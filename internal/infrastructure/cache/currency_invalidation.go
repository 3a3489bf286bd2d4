package cache

import (
	"context"

	"github.com/ledgerline/backend/internal/domain/finance"
	"go.uber.org/zap"
)

// InvalidatingCurrencyRepository drops a company's cached rate table
// whenever one of its currencies is saved.
type InvalidatingCurrencyRepository struct {
	finance.CurrencyRepository
	cache  RateTableCache
	logger *zap.Logger
}

// NewInvalidatingCurrencyRepository wraps repo so writes invalidate cache
func NewInvalidatingCurrencyRepository(repo finance.CurrencyRepository, cache RateTableCache, logger *zap.Logger) *InvalidatingCurrencyRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvalidatingCurrencyRepository{CurrencyRepository: repo, cache: cache, logger: logger}
}

// Save persists the currency, then invalidates the tenant's rate table.
// An invalidation failure is logged; the stale table expires with its TTL.
func (r *InvalidatingCurrencyRepository) Save(ctx context.Context, currency *finance.CompanyCurrency) error {
	if err := r.CurrencyRepository.Save(ctx, currency); err != nil {
		return err
	}
	if err := r.cache.Invalidate(ctx, currency.TenantID); err != nil {
		r.logger.Warn("Rate table invalidation failed",
			zap.String("tenant_id", currency.TenantID.String()),
			zap.Error(err),
		)
	}
	return nil
}

var _ finance.CurrencyRepository = (*InvalidatingCurrencyRepository)(nil)
