package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormCustomerAccountStore_SaveWithUser(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("saves both rows", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewGormCustomerAccountStore(db)

		customer := newTestCustomer(t, tenantID, "Acme", "billing@acme.test")
		user, err := identity.NewCustomerUser(tenantID, customer.Name, customer.Email, "secret1", "en-GB")
		require.NoError(t, err)
		require.NoError(t, customer.LinkUser(user.ID))

		require.NoError(t, store.SaveWithUser(ctx, customer, user))

		found, err := NewGormCustomerRepository(db).FindByIDForTenant(ctx, tenantID, customer.ID)
		require.NoError(t, err)
		require.NotNil(t, found.UserID)
		assert.Equal(t, user.ID, *found.UserID)

		exists, err := NewGormUserRepository(db).ExistsByEmail(ctx, "billing@acme.test")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("customer failure rolls back the user", func(t *testing.T) {
		db := setupTestDB(t)
		failCustomers := func(tx *gorm.DB) {
			if tx.Statement.Table == "customers" {
				_ = tx.AddError(errors.New("customers unavailable"))
			}
		}
		require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_customers", failCustomers))
		require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_customers", failCustomers))

		customer := newTestCustomer(t, tenantID, "Acme", "billing@acme.test")
		user, err := identity.NewCustomerUser(tenantID, customer.Name, customer.Email, "secret1", "en-GB")
		require.NoError(t, err)
		require.NoError(t, customer.LinkUser(user.ID))

		err = NewGormCustomerAccountStore(db).SaveWithUser(ctx, customer, user)
		require.Error(t, err)

		exists, err := NewGormUserRepository(db).ExistsByEmail(ctx, "billing@acme.test")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
