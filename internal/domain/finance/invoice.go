package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// IsValid checks if the invoice status is known
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartial, InvoiceStatusPaid:
		return true
	}
	return false
}

// Invoice is a bill issued to a customer. Payments are applied against it
// until it is fully settled.
type Invoice struct {
	shared.TenantAggregateRoot
	CustomerID    uuid.UUID
	InvoiceNumber string
	Status        InvoiceStatus
	InvoicedAt    time.Time
	DueAt         time.Time
	Amount        valueobject.Money
	Payments      []Payment
}

// Payment is money received against a single invoice
type Payment struct {
	shared.BaseEntity
	TenantID    uuid.UUID
	InvoiceID   uuid.UUID
	PaidAt      time.Time
	Amount      valueobject.Money
	Description string
}

// NewInvoice creates a draft invoice
func NewInvoice(tenantID, customerID uuid.UUID, number string, amount valueobject.Money, invoicedAt, dueAt time.Time) (*Invoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Invoice must reference a customer")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}
	if dueAt.Before(invoicedAt) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before invoice date")
	}

	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		InvoiceNumber:       number,
		Status:              InvoiceStatusDraft,
		InvoicedAt:          invoicedAt,
		DueAt:               dueAt,
		Amount:              amount,
	}, nil
}

// MarkSent moves a draft invoice to sent
func (i *Invoice) MarkSent() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be sent")
	}
	i.Status = InvoiceStatusSent
	i.IncrementVersion()
	return nil
}

// AddPayment records a payment. When the payment is in the invoice currency
// the status follows the running total; otherwise the invoice becomes partial
// and MarkPaid settles it explicitly.
func (i *Invoice) AddPayment(paidAt time.Time, amount valueobject.Money, description string) (*Payment, error) {
	if i.IsPaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Invoice is already paid")
	}
	if !amount.Amount().IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	payment := Payment{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    i.TenantID,
		InvoiceID:   i.ID,
		PaidAt:      paidAt,
		Amount:      amount,
		Description: description,
	}
	i.Payments = append(i.Payments, payment)
	i.Status = InvoiceStatusPartial

	if paid, ok := i.paidInOwnCurrency(); ok && paid.Amount().GreaterThanOrEqual(i.Amount.Amount()) {
		i.Status = InvoiceStatusPaid
	}
	i.IncrementVersion()
	return &i.Payments[len(i.Payments)-1], nil
}

// MarkPaid settles the invoice regardless of the payment total
func (i *Invoice) MarkPaid() {
	i.Status = InvoiceStatusPaid
	i.IncrementVersion()
}

// IsPaid reports whether the invoice is fully settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// paidInOwnCurrency sums payments when all share the invoice currency
func (i *Invoice) paidInOwnCurrency() (valueobject.Money, bool) {
	total := valueobject.Zero(i.Amount.Currency())
	for _, p := range i.Payments {
		sum, err := total.Add(p.Amount)
		if err != nil {
			return valueobject.Money{}, false
		}
		total = sum
	}
	return total, true
}
