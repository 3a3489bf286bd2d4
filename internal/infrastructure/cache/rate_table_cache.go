// Package cache holds the per-company currency rate tables used to convert
// statement amounts without reloading the currencies table on every request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ErrCacheMiss is returned when no rate table is cached for a tenant
var ErrCacheMiss = finance.ErrRateTableNotCached

// RateTableCache stores a rate table per tenant
type RateTableCache interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*finance.RateTable, error)
	Set(ctx context.Context, tenantID uuid.UUID, table *finance.RateTable, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// rateTablePayload is the serialized form of a rate table
type rateTablePayload struct {
	Reporting string            `json:"reporting"`
	Rates     map[string]string `json:"rates"`
}

func encodeRateTable(table *finance.RateTable) ([]byte, error) {
	payload := rateTablePayload{
		Reporting: table.ReportingCurrency().String(),
		Rates:     make(map[string]string),
	}
	for code, rate := range table.Rates() {
		payload.Rates[code.String()] = rate.String()
	}
	return json.Marshal(payload)
}

func decodeRateTable(data []byte) (*finance.RateTable, error) {
	var payload rateTablePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode rate table: %w", err)
	}
	rates := make(map[valueobject.Currency]decimal.Decimal, len(payload.Rates))
	for code, raw := range payload.Rates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("decode rate for %s: %w", code, err)
		}
		rates[valueobject.Currency(code)] = rate
	}
	return finance.NewRateTable(valueobject.Currency(payload.Reporting), rates)
}
