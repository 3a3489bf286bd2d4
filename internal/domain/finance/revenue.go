package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
)

// AccountRef identifies the bank or cash account money was deposited to
type AccountRef struct {
	ID   uuid.UUID
	Name string
}

// CategoryRef identifies the income category of a transaction
type CategoryRef struct {
	ID   uuid.UUID
	Name string
}

// Revenue is income received from a customer outside of any invoice.
// It is realized immediately.
type Revenue struct {
	shared.TenantAggregateRoot
	CustomerID  uuid.UUID
	Account     AccountRef
	Category    CategoryRef
	PaidAt      time.Time
	Amount      valueobject.Money
	Description string
	Reference   string
}

// NewRevenue creates a revenue record
func NewRevenue(tenantID, customerID uuid.UUID, account AccountRef, category CategoryRef, paidAt time.Time, amount valueobject.Money) (*Revenue, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Revenue must reference a customer")
	}
	if account.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Revenue must reference an account")
	}
	if !amount.Amount().IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Revenue amount must be positive")
	}

	return &Revenue{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		Account:             account,
		Category:            category,
		PaidAt:              paidAt,
		Amount:              amount,
	}, nil
}
