package partner

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer is a company's client. Invoices and revenues reference it, and it
// may be linked to a portal user account.
type Customer struct {
	shared.TenantAggregateRoot
	UserID    *uuid.UUID
	Name      string
	Email     string
	TaxNumber string
	Currency  valueobject.Currency
	Phone     string
	Address   string
	Website   string
	Reference string
	Enabled   bool
}

// NewCustomer creates an enabled customer. Email may be empty.
func NewCustomer(tenantID uuid.UUID, name, email string, currency valueobject.Currency) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Email:               email,
		Currency:            currency,
		Enabled:             true,
	}, nil
}

// Rename changes the display name
func (c *Customer) Rename(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.IncrementVersion()
	return nil
}

// SetContact replaces email, phone and website
func (c *Customer) SetContact(email, phone, website string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Website = strings.TrimSpace(website)
	c.IncrementVersion()
	return nil
}

// SetBilling replaces tax number, address and reference
func (c *Customer) SetBilling(taxNumber, address, reference string) {
	c.TaxNumber = strings.TrimSpace(taxNumber)
	c.Address = address
	c.Reference = strings.TrimSpace(reference)
	c.IncrementVersion()
}

// SetCurrency changes the customer's default currency
func (c *Customer) SetCurrency(currency valueobject.Currency) error {
	if err := validateCurrency(currency); err != nil {
		return err
	}
	c.Currency = currency
	c.IncrementVersion()
	return nil
}

// LinkUser attaches a portal user. A customer can be linked only once.
func (c *Customer) LinkUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if c.UserID != nil && *c.UserID != userID {
		return shared.NewDomainError("USER_ALREADY_LINKED", "Customer is already linked to a user")
	}
	c.UserID = &userID
	c.IncrementVersion()
	return nil
}

// HasUser reports whether a portal user is linked
func (c *Customer) HasUser() bool {
	return c.UserID != nil
}

// Enable makes the customer selectable on new documents
func (c *Customer) Enable() {
	if c.Enabled {
		return
	}
	c.Enabled = true
	c.IncrementVersion()
}

// Disable hides the customer from new documents
func (c *Customer) Disable() {
	if !c.Enabled {
		return
	}
	c.Enabled = false
	c.IncrementVersion()
}

// Duplicate returns a copy with a fresh identity. The user link is not copied
// since a user belongs to exactly one customer.
func (c *Customer) Duplicate() *Customer {
	clone := *c
	clone.TenantAggregateRoot = shared.NewTenantAggregateRoot(c.TenantID)
	clone.CreatedBy = c.CreatedBy
	clone.UserID = nil
	return &clone
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 255 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateCurrency(currency valueobject.Currency) error {
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency code must be 3 letters")
	}
	return nil
}
