package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]finance.CompanyCurrency, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]finance.CompanyCurrency), args.Error(1)
}

func (m *MockCurrencyRepository) FindEnabled(ctx context.Context, tenantID uuid.UUID) ([]finance.CompanyCurrency, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]finance.CompanyCurrency), args.Error(1)
}

func (m *MockCurrencyRepository) Save(ctx context.Context, currency *finance.CompanyCurrency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

type failingInvalidateCache struct {
	*InMemoryRateTableCache
}

func (failingInvalidateCache) Invalidate(context.Context, uuid.UUID) error {
	return errors.New("redis down")
}

func TestInvalidatingCurrencyRepository_Save(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	otherTenant := uuid.New()

	newCurrency := func(t *testing.T) *finance.CompanyCurrency {
		c, err := finance.NewCompanyCurrency(tenantID, "EUR", "Euro", decimal.RequireFromString("0.9"))
		require.NoError(t, err)
		return c
	}

	t.Run("drops the tenant's cached table", func(t *testing.T) {
		rates := NewInMemoryRateTableCache()
		require.NoError(t, rates.Set(ctx, tenantID, testTable(t), time.Minute))
		require.NoError(t, rates.Set(ctx, otherTenant, testTable(t), time.Minute))
		repo := new(MockCurrencyRepository)
		currency := newCurrency(t)
		repo.On("Save", ctx, currency).Return(nil)

		err := NewInvalidatingCurrencyRepository(repo, rates, zaptest.NewLogger(t)).Save(ctx, currency)
		require.NoError(t, err)

		_, err = rates.Get(ctx, tenantID)
		assert.ErrorIs(t, err, ErrCacheMiss)
		_, err = rates.Get(ctx, otherTenant)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("save failure keeps the cache", func(t *testing.T) {
		rates := NewInMemoryRateTableCache()
		require.NoError(t, rates.Set(ctx, tenantID, testTable(t), time.Minute))
		repo := new(MockCurrencyRepository)
		currency := newCurrency(t)
		repo.On("Save", ctx, currency).Return(errors.New("db down"))

		err := NewInvalidatingCurrencyRepository(repo, rates, nil).Save(ctx, currency)
		assert.EqualError(t, err, "db down")

		_, err = rates.Get(ctx, tenantID)
		assert.NoError(t, err)
	})

	t.Run("invalidation failure does not fail the save", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		currency := newCurrency(t)
		repo.On("Save", ctx, currency).Return(nil)
		rates := failingInvalidateCache{NewInMemoryRateTableCache()}

		err := NewInvalidatingCurrencyRepository(repo, rates, zaptest.NewLogger(t)).Save(ctx, currency)
		assert.NoError(t, err)
	})

	t.Run("reads pass through", func(t *testing.T) {
		repo := new(MockCurrencyRepository)
		currencies := []finance.CompanyCurrency{*newCurrency(t)}
		repo.On("FindEnabled", ctx, tenantID).Return(currencies, nil)

		got, err := NewInvalidatingCurrencyRepository(repo, NewInMemoryRateTableCache(), nil).FindEnabled(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, currencies, got)
	})
}
