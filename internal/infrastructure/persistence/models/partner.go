package models

import (
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"gorm.io/gorm"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	TenantModel
	UserID    *uuid.UUID     `gorm:"type:uuid;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Email     string         `gorm:"type:varchar(255);not null;default:'';index"`
	TaxNumber string         `gorm:"type:varchar(100)"`
	Currency  string         `gorm:"type:varchar(3);not null"`
	Phone     string         `gorm:"type:varchar(50)"`
	Address   string         `gorm:"type:text"`
	Website   string         `gorm:"type:varchar(255)"`
	Reference string         `gorm:"type:varchar(255)"`
	Enabled   bool           `gorm:"not null;default:true;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		TaxNumber: m.TaxNumber,
		Currency:  valueobject.Currency(m.Currency),
		Phone:     m.Phone,
		Address:   m.Address,
		Website:   m.Website,
		Reference: m.Reference,
		Enabled:   m.Enabled,
	}
	c.TenantAggregateRoot = m.root()
	return c
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.setRoot(c.TenantAggregateRoot)
	m.UserID = c.UserID
	m.Name = c.Name
	m.Email = c.Email
	m.TaxNumber = c.TaxNumber
	m.Currency = c.Currency.String()
	m.Phone = c.Phone
	m.Address = c.Address
	m.Website = c.Website
	m.Reference = c.Reference
	m.Enabled = c.Enabled
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

