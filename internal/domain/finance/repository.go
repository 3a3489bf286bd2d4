package finance

import (
	"context"

	"github.com/google/uuid"
)

// InvoiceSource provides a customer's invoices with their payments loaded
type InvoiceSource interface {
	FindByCustomerWithPayments(ctx context.Context, tenantID, customerID uuid.UUID) ([]Invoice, error)
}

// RevenueSource provides a customer's revenues with account and category loaded
type RevenueSource interface {
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]Revenue, error)
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	InvoiceSource

	// CountByCustomer counts invoices referencing the customer
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)

	// Save creates or updates an invoice together with its payments
	Save(ctx context.Context, invoice *Invoice) error
}

// RevenueRepository defines the interface for revenue persistence
type RevenueRepository interface {
	RevenueSource

	// CountByCustomer counts revenues referencing the customer
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)

	// Save creates or updates a revenue
	Save(ctx context.Context, revenue *Revenue) error
}

// CurrencyRepository defines the interface for company currency persistence
type CurrencyRepository interface {
	// FindAllForTenant returns every configured currency
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]CompanyCurrency, error)

	// FindEnabled returns enabled currencies ordered by name
	FindEnabled(ctx context.Context, tenantID uuid.UUID) ([]CompanyCurrency, error)

	// Save creates or updates a currency
	Save(ctx context.Context, currency *CompanyCurrency) error
}
