package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/finance"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	TenantModel
	CustomerID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	InvoiceNumber string                `gorm:"type:varchar(50);not null"`
	Status        finance.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	InvoicedAt    time.Time             `gorm:"not null"`
	DueAt         time.Time             `gorm:"not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	CurrencyCode  string                `gorm:"type:varchar(3);not null"`
	Payments      []PaymentModel        `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *finance.Invoice {
	inv := &finance.Invoice{
		CustomerID:    m.CustomerID,
		InvoiceNumber: m.InvoiceNumber,
		Status:        m.Status,
		InvoicedAt:    m.InvoicedAt,
		DueAt:         m.DueAt,
		Amount:        money(m.Amount, m.CurrencyCode),
		Payments:      make([]finance.Payment, 0, len(m.Payments)),
	}
	inv.TenantAggregateRoot = m.root()
	for i := range m.Payments {
		inv.Payments = append(inv.Payments, m.Payments[i].ToDomain())
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *finance.Invoice) {
	m.setRoot(inv.TenantAggregateRoot)
	m.CustomerID = inv.CustomerID
	m.InvoiceNumber = inv.InvoiceNumber
	m.Status = inv.Status
	m.InvoicedAt = inv.InvoicedAt
	m.DueAt = inv.DueAt
	m.Amount = inv.Amount.Amount()
	m.CurrencyCode = inv.Amount.Currency().String()
	m.Payments = make([]PaymentModel, 0, len(inv.Payments))
	for i := range inv.Payments {
		m.Payments = append(m.Payments, *PaymentModelFromDomain(&inv.Payments[i]))
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *finance.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for a payment applied to an invoice.
type PaymentModel struct {
	BaseModel
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaidAt       time.Time       `gorm:"not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CurrencyCode string          `gorm:"type:varchar(3);not null"`
	Description  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "invoice_payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() finance.Payment {
	return finance.Payment{
		BaseEntity:  m.entity(),
		TenantID:    m.TenantID,
		InvoiceID:   m.InvoiceID,
		PaidAt:      m.PaidAt,
		Amount:      money(m.Amount, m.CurrencyCode),
		Description: m.Description,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{
		TenantID:     p.TenantID,
		InvoiceID:    p.InvoiceID,
		PaidAt:       p.PaidAt,
		Amount:       p.Amount.Amount(),
		CurrencyCode: p.Amount.Currency().String(),
		Description:  p.Description,
	}
	m.setEntity(p.BaseEntity)
	return m
}

// AccountModel is a bank or cash account revenues are deposited to
type AccountModel struct {
	TenantModel
	Name         string `gorm:"type:varchar(255);not null"`
	Number       string `gorm:"type:varchar(100)"`
	CurrencyCode string `gorm:"type:varchar(3);not null"`
	Enabled      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// CategoryModel is an income or expense category
type CategoryModel struct {
	TenantModel
	Name    string `gorm:"type:varchar(255);not null"`
	Type    string `gorm:"type:varchar(20);not null;default:'income'"`
	Color   string `gorm:"type:varchar(20)"`
	Enabled bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// RevenueModel is the persistence model for the Revenue aggregate root.
type RevenueModel struct {
	TenantModel
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID    uuid.UUID       `gorm:"type:uuid;not null"`
	CategoryID   uuid.UUID       `gorm:"type:uuid"`
	PaidAt       time.Time       `gorm:"not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CurrencyCode string          `gorm:"type:varchar(3);not null"`
	Description  string          `gorm:"type:text"`
	Reference    string          `gorm:"type:varchar(255)"`
	Account      AccountModel    `gorm:"foreignKey:AccountID"`
	Category     CategoryModel   `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (RevenueModel) TableName() string {
	return "revenues"
}

// ToDomain converts the persistence model to a domain Revenue entity.
// Account and category names are filled only when the associations were preloaded.
func (m *RevenueModel) ToDomain() *finance.Revenue {
	r := &finance.Revenue{
		CustomerID:  m.CustomerID,
		Account:     finance.AccountRef{ID: m.AccountID, Name: m.Account.Name},
		Category:    finance.CategoryRef{ID: m.CategoryID, Name: m.Category.Name},
		PaidAt:      m.PaidAt,
		Amount:      money(m.Amount, m.CurrencyCode),
		Description: m.Description,
		Reference:   m.Reference,
	}
	r.TenantAggregateRoot = m.root()
	return r
}

// FromDomain populates the persistence model from a domain Revenue entity.
func (m *RevenueModel) FromDomain(r *finance.Revenue) {
	m.setRoot(r.TenantAggregateRoot)
	m.CustomerID = r.CustomerID
	m.AccountID = r.Account.ID
	m.CategoryID = r.Category.ID
	m.PaidAt = r.PaidAt
	m.Amount = r.Amount.Amount()
	m.CurrencyCode = r.Amount.Currency().String()
	m.Description = r.Description
	m.Reference = r.Reference
}

// RevenueModelFromDomain creates a new persistence model from a domain Revenue entity.
func RevenueModelFromDomain(r *finance.Revenue) *RevenueModel {
	m := &RevenueModel{}
	m.FromDomain(r)
	return m
}

// CurrencyModel is the persistence model for a company currency.
type CurrencyModel struct {
	TenantModel
	Code      string          `gorm:"type:varchar(3);not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,8);not null"`
	Precision int             `gorm:"not null;default:2"`
	Symbol    string          `gorm:"type:varchar(10)"`
	Enabled   bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain CompanyCurrency.
func (m *CurrencyModel) ToDomain() *finance.CompanyCurrency {
	c := &finance.CompanyCurrency{
		Code:      valueobject.Currency(m.Code),
		Name:      m.Name,
		Rate:      m.Rate,
		Precision: m.Precision,
		Symbol:    m.Symbol,
		Enabled:   m.Enabled,
	}
	c.TenantAggregateRoot = m.root()
	return c
}

// FromDomain populates the persistence model from a domain CompanyCurrency.
func (m *CurrencyModel) FromDomain(c *finance.CompanyCurrency) {
	m.setRoot(c.TenantAggregateRoot)
	m.Code = c.Code.String()
	m.Name = c.Name
	m.Rate = c.Rate
	m.Precision = c.Precision
	m.Symbol = c.Symbol
	m.Enabled = c.Enabled
}

// CurrencyModelFromDomain creates a new persistence model from a domain CompanyCurrency.
func CurrencyModelFromDomain(c *finance.CompanyCurrency) *CurrencyModel {
	m := &CurrencyModel{}
	m.FromDomain(c)
	return m
}

// money rebuilds a Money from stored columns; stored rows always carry a currency
func money(amount decimal.Decimal, code string) valueobject.Money {
	m, err := valueobject.NewMoney(amount, valueobject.Currency(code))
	if err != nil {
		return valueobject.Zero(valueobject.Currency(code))
	}
	return m
}

