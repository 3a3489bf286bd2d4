package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/domain/partner"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CustomerInput carries the fields of the customer form. It is used by both
// store and update.
type CustomerInput struct {
	Name         string
	Email        string
	TaxNumber    string
	CurrencyCode string
	Phone        string
	Address      string
	Website      string
	Reference    string
	Enabled      *bool
	// CreateUser requests a portal user built from Name, Email and Password
	CreateUser bool
	Password   string
}

// InlineCustomerInput is the minimal form used to create a customer from
// another document's form
type InlineCustomerInput struct {
	Name         string
	Email        string
	CurrencyCode string
}

// CustomerListFilter represents filter options for the customer index
type CustomerListFilter struct {
	Search   string
	Enabled  *bool
	OrderBy  string
	OrderDir string
	Page     int
	PageSize int
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"company_id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	TaxNumber    string     `json:"tax_number"`
	CurrencyCode string     `json:"currency_code"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Website      string     `json:"website"`
	Reference    string     `json:"reference"`
	Enabled      bool       `json:"enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		TenantID:     c.TenantID,
		UserID:       c.UserID,
		Name:         c.Name,
		Email:        c.Email,
		TaxNumber:    c.TaxNumber,
		CurrencyCode: c.Currency.String(),
		Phone:        c.Phone,
		Address:      c.Address,
		Website:      c.Website,
		Reference:    c.Reference,
		Enabled:      c.Enabled,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// CustomerFormResponse is the data behind the create and edit forms.
// Currencies maps enabled currency codes to their names.
type CustomerFormResponse struct {
	Customer   *CustomerResponse `json:"customer,omitempty"`
	Currencies map[string]string `json:"currencies"`
}

// CustomerStatementResponse is a customer together with its financial summary
type CustomerStatementResponse struct {
	Customer CustomerResponse         `json:"customer"`
	Summary  *finance.CustomerSummary `json:"summary"`
}
