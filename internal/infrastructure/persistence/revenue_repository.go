package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRevenueRepository implements RevenueRepository using GORM
type GormRevenueRepository struct {
	db *gorm.DB
}

// NewGormRevenueRepository creates a new GormRevenueRepository
func NewGormRevenueRepository(db *gorm.DB) *GormRevenueRepository {
	return &GormRevenueRepository{db: db}
}

// FindByCustomer returns the customer's revenues with account and category names
func (r *GormRevenueRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]finance.Revenue, error) {
	var revenueModels []models.RevenueModel
	if err := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Category").
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("paid_at ASC").
		Order("id ASC").
		Find(&revenueModels).Error; err != nil {
		return nil, err
	}

	revenues := make([]finance.Revenue, len(revenueModels))
	for i := range revenueModels {
		revenues[i] = *revenueModels[i].ToDomain()
	}
	return revenues, nil
}

// CountByCustomer counts revenues referencing the customer
func (r *GormRevenueRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RevenueModel{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a revenue
func (r *GormRevenueRepository) Save(ctx context.Context, revenue *finance.Revenue) error {
	model := models.RevenueModelFromDomain(revenue)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error
}

// Ensure GormRevenueRepository implements RevenueRepository
var _ finance.RevenueRepository = (*GormRevenueRepository)(nil)
