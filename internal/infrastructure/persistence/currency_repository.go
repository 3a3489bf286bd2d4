package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCurrencyRepository implements CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindAllForTenant returns every configured currency ordered by code
func (r *GormCurrencyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]finance.CompanyCurrency, error) {
	return r.find(r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("code ASC"))
}

// FindEnabled returns enabled currencies ordered by name
func (r *GormCurrencyRepository) FindEnabled(ctx context.Context, tenantID uuid.UUID) ([]finance.CompanyCurrency, error) {
	return r.find(r.db.WithContext(ctx).
		Where("tenant_id = ? AND enabled = ?", tenantID, true).
		Order("name ASC"))
}

// Save creates or updates a currency
func (r *GormCurrencyRepository) Save(ctx context.Context, currency *finance.CompanyCurrency) error {
	return r.db.WithContext(ctx).Save(models.CurrencyModelFromDomain(currency)).Error
}

func (r *GormCurrencyRepository) find(query *gorm.DB) ([]finance.CompanyCurrency, error) {
	var currencyModels []models.CurrencyModel
	if err := query.Find(&currencyModels).Error; err != nil {
		return nil, err
	}
	currencies := make([]finance.CompanyCurrency, len(currencyModels))
	for i := range currencyModels {
		currencies[i] = *currencyModels[i].ToDomain()
	}
	return currencies, nil
}

// Ensure GormCurrencyRepository implements CurrencyRepository
var _ finance.CurrencyRepository = (*GormCurrencyRepository)(nil)
