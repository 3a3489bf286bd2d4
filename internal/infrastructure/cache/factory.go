package cache

import (
	"context"

	"github.com/ledgerline/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewRateTableCache returns a Redis-backed cache when Redis answers, and
// the in-memory cache otherwise. The returned close function releases the
// Redis client and is always safe to call.
func NewRateTableCache(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (RateTableCache, func() error) {
	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory rate table cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryRateTableCache(), func() error { return nil }
	}

	logger.Info("Using Redis rate table cache", zap.String("addr", cfg.Addr()))
	return NewRedisRateTableCache(client, ""), client.Close
}
