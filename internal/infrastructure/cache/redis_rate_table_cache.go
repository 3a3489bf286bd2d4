package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const defaultRateKeyPrefix = "ledger:rates:"

// RedisRateTableCache implements RateTableCache on Redis so that every
// instance shares the same cached tables
type RedisRateTableCache struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisRateTableCache creates a cache over an existing client
func NewRedisRateTableCache(client redis.Cmdable, keyPrefix string) *RedisRateTableCache {
	if keyPrefix == "" {
		keyPrefix = defaultRateKeyPrefix
	}
	return &RedisRateTableCache{client: client, keyPrefix: keyPrefix}
}

func (c *RedisRateTableCache) key(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String()
}

// Get loads the tenant's table, returning ErrCacheMiss when absent
func (c *RedisRateTableCache) Get(ctx context.Context, tenantID uuid.UUID) (*finance.RateTable, error) {
	data, err := c.client.Get(ctx, c.key(tenantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table: %w", err)
	}
	return decodeRateTable(data)
}

// Set stores the tenant's table with a TTL
func (c *RedisRateTableCache) Set(ctx context.Context, tenantID uuid.UUID, table *finance.RateTable, ttl time.Duration) error {
	data, err := encodeRateTable(table)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(tenantID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write rate table: %w", err)
	}
	return nil
}

// Invalidate removes the tenant's table
func (c *RedisRateTableCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate rate table: %w", err)
	}
	return nil
}

var _ RateTableCache = (*RedisRateTableCache)(nil)
