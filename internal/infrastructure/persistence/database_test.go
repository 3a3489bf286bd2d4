package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		gormDB, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectPing()
		require.NoError(t, (&Database{DB: gormDB}).Ping(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed ping", func(t *testing.T) {
		gormDB, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		assert.Error(t, (&Database{DB: gormDB}).Ping(context.Background()))
	})
}

func TestDatabase_Close(t *testing.T) {
	gormDB, mock, _ := setupMockDB(t)
	mock.ExpectClose()

	require.NoError(t, (&Database{DB: gormDB}).Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Transaction(t *testing.T) {
	db := &Database{DB: setupTestDB(t)}

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.Transaction(context.Background(), func(tx *gorm.DB) error {
			require.NoError(t, tx.Exec("INSERT INTO user_roles (user_id, role) VALUES (?, ?)", "u-1", "customer").Error)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int64
		require.NoError(t, db.DB.Table("user_roles").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestAllModels(t *testing.T) {
	db := setupTestDB(t)
	for _, table := range []string{"users", "user_roles", "customers", "currencies", "accounts", "categories", "invoices", "invoice_payments", "revenues"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
