package cache

import (
	"context"
	"testing"

	"github.com/ledgerline/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestNewRateTableCache_FallsBackWithoutRedis(t *testing.T) {
	rates, closeFn := NewRateTableCache(context.Background(), config.RedisConfig{Host: "127.0.0.1", Port: 1}, zaptest.NewLogger(t))
	assert.IsType(t, &InMemoryRateTableCache{}, rates)
	assert.NoError(t, closeFn())
}
