//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/ledgerline/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

// setupRedis starts a throwaway redis container and returns its config
func setupRedis(t *testing.T) config.RedisConfig {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)
	return config.RedisConfig{Host: host, Port: port.Int()}
}

func TestRedisRateTableCache_Integration(t *testing.T) {
	cfg := setupRedis(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisRateTableCache(client, "test:rates:")
	tenantID := uuid.New()

	t.Run("miss maps to ErrCacheMiss", func(t *testing.T) {
		_, err := c.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("round trips the rate table", func(t *testing.T) {
		table := testTable(t)
		require.NoError(t, c.Set(ctx, tenantID, table, time.Minute))

		got, err := c.Get(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, valueobject.Currency("USD"), got.ReportingCurrency())
		assert.Equal(t, len(table.Rates()), len(got.Rates()))
		for code, rate := range table.Rates() {
			assert.True(t, rate.Equal(got.Rates()[code]), "rate for %s", code)
		}

		ttl, err := client.TTL(ctx, "test:rates:"+tenantID.String()).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("invalidate removes the table", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, tenantID, testTable(t), time.Minute))
		require.NoError(t, c.Invalidate(ctx, tenantID))

		_, err := c.Get(ctx, tenantID)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("corrupt payload is an error, not a miss", func(t *testing.T) {
		corrupt := uuid.New()
		require.NoError(t, client.Set(ctx, "test:rates:"+corrupt.String(), "not json", time.Minute).Err())

		_, err := c.Get(ctx, corrupt)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("default key prefix", func(t *testing.T) {
		d := NewRedisRateTableCache(client, "")
		require.NoError(t, d.Set(ctx, tenantID, testTable(t), time.Minute))

		exists, err := client.Exists(ctx, defaultRateKeyPrefix+tenantID.String()).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("factory picks redis when reachable", func(t *testing.T) {
		rates, closeFn := NewRateTableCache(ctx, cfg, zaptest.NewLogger(t))
		t.Cleanup(func() { _ = closeFn() })
		assert.IsType(t, &RedisRateTableCache{}, rates)
	})
}
