package finance

import (
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CompanyCurrency is a currency configured for a company. Rate is the number
// of units of this currency per one unit of the company's default currency.
type CompanyCurrency struct {
	shared.TenantAggregateRoot
	Code      valueobject.Currency
	Name      string
	Rate      decimal.Decimal
	Precision int
	Symbol    string
	Enabled   bool
}

// NewCompanyCurrency creates an enabled currency
func NewCompanyCurrency(tenantID uuid.UUID, code valueobject.Currency, name string, rate decimal.Decimal) (*CompanyCurrency, error) {
	if len(code) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code must be 3 letters")
	}
	if !rate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RATE", "Currency rate must be positive")
	}
	return &CompanyCurrency{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Rate:                rate,
		Precision:           2,
		Enabled:             true,
	}, nil
}
