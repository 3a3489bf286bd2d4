package persistence

import (
	"context"

	"github.com/ledgerline/backend/internal/domain/identity"
	"github.com/ledgerline/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormCustomerAccountStore persists a customer together with the portal user
// created for it. Either both rows are written or neither is.
type GormCustomerAccountStore struct {
	db *gorm.DB
}

// NewGormCustomerAccountStore creates a new GormCustomerAccountStore
func NewGormCustomerAccountStore(db *gorm.DB) *GormCustomerAccountStore {
	return &GormCustomerAccountStore{db: db}
}

// SaveWithUser saves user first, then the customer that references it
func (s *GormCustomerAccountStore) SaveWithUser(ctx context.Context, customer *partner.Customer, user *identity.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewGormUserRepository(tx).Save(ctx, user); err != nil {
			return err
		}
		return NewGormCustomerRepository(tx).Save(ctx, customer)
	})
}
