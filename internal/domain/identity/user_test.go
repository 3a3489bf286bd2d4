package identity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates portal user", func(t *testing.T) {
		user, err := NewCustomerUser(tenantID, "Jane Roe", " Jane@Example.COM ", "secret1", "en-GB")
		require.NoError(t, err)

		assert.Equal(t, tenantID, user.TenantID)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "en-GB", user.Locale)
		assert.True(t, user.Enabled)
		assert.True(t, user.HasRole(RoleCustomer))
		assert.NotEqual(t, "secret1", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret1"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		code     string
	}{
		{"empty name", "", "a@b.io", "secret1", "INVALID_NAME"},
		{"missing email", "Jane", "", "secret1", "INVALID_EMAIL"},
		{"bad email", "Jane", "jane@", "secret1", "INVALID_EMAIL"},
		{"short password", "Jane", "a@b.io", "12345", "INVALID_PASSWORD"},
		{"long password", "Jane", "a@b.io", strings.Repeat("x", 73), "INVALID_PASSWORD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustomerUser(tenantID, tt.userName, tt.email, tt.password, "en-GB")
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestUser_AssignRole(t *testing.T) {
	user, err := NewUser(uuid.New(), "Jane", "jane@example.com", "secret1", "en-GB")
	require.NoError(t, err)
	assert.Empty(t, user.Roles)

	user.AssignRole(RoleCustomer)
	user.AssignRole(RoleCustomer)
	assert.Equal(t, []string{RoleCustomer}, user.Roles)
	assert.Equal(t, 2, user.Version)
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "Jane", "jane@example.com", "secret1", "en-GB")
	require.NoError(t, err)

	require.Error(t, user.SetPassword("123"))
	require.NoError(t, user.SetPassword("another"))
	assert.True(t, user.VerifyPassword("another"))
}
