package identity

import (
	"context"
)

// UserRepository defines the interface for user persistence.
// Emails are unique across all companies.
type UserRepository interface {
	// ExistsByEmail checks if an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save creates or updates a user and its roles
	Save(ctx context.Context, user *User) error
}
