package models

import (
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
// Emails are unique across companies.
type UserModel struct {
	TenantModel
	Name         string          `gorm:"type:varchar(255);not null"`
	Email        string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string          `gorm:"type:varchar(255);not null"`
	Locale       string          `gorm:"type:varchar(10);not null"`
	Enabled      bool            `gorm:"not null;default:true"`
	Roles        []UserRoleModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Locale:       m.Locale,
		Enabled:      m.Enabled,
		Roles:        make([]string, 0, len(m.Roles)),
	}
	u.TenantAggregateRoot = m.root()
	for _, r := range m.Roles {
		u.Roles = append(u.Roles, r.Role)
	}
	return u
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.setRoot(u.TenantAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Locale = u.Locale
	m.Enabled = u.Enabled
	m.Roles = make([]UserRoleModel, 0, len(u.Roles))
	for _, role := range u.Roles {
		m.Roles = append(m.Roles, UserRoleModel{UserID: u.ID, Role: role})
	}
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// UserRoleModel is a role held by a user
type UserRoleModel struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role   string    `gorm:"type:varchar(50);primaryKey"`
}

// TableName returns the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_roles"
}
