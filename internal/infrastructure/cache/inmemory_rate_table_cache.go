package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
)

type rateEntry struct {
	table     *finance.RateTable
	expiresAt time.Time
}

// InMemoryRateTableCache implements RateTableCache with a process-local map.
// Suitable for single-instance deployments and tests.
type InMemoryRateTableCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]rateEntry
	now     func() time.Time
}

// NewInMemoryRateTableCache creates an empty cache
func NewInMemoryRateTableCache() *InMemoryRateTableCache {
	return &InMemoryRateTableCache{
		entries: make(map[uuid.UUID]rateEntry),
		now:     time.Now,
	}
}

// Get returns the cached table or ErrCacheMiss when absent or expired
func (c *InMemoryRateTableCache) Get(_ context.Context, tenantID uuid.UUID) (*finance.RateTable, error) {
	c.mu.RLock()
	e, ok := c.entries[tenantID]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return nil, ErrCacheMiss
	}
	return e.table, nil
}

// Set stores the table until ttl elapses
func (c *InMemoryRateTableCache) Set(_ context.Context, tenantID uuid.UUID, table *finance.RateTable, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenantID] = rateEntry{table: table, expiresAt: c.now().Add(ttl)}
	return nil
}

// Invalidate drops the tenant's table
func (c *InMemoryRateTableCache) Invalidate(_ context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tenantID)
	return nil
}

var _ RateTableCache = (*InMemoryRateTableCache)(nil)
