package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice(t *testing.T) {
	now := time.Now()

	t.Run("creates draft", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), uuid.New(), " INV-001 ", usd("100"), now, now.AddDate(0, 0, 30))
		require.NoError(t, err)
		assert.Equal(t, "INV-001", inv.InvoiceNumber)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.False(t, inv.IsPaid())
	})

	tests := []struct {
		name       string
		customerID uuid.UUID
		number     string
		amount     string
		dueAt      time.Time
		code       string
	}{
		{"empty number", uuid.New(), "", "10", now, "INVALID_INVOICE_NUMBER"},
		{"no customer", uuid.Nil, "INV-1", "10", now, "INVALID_CUSTOMER"},
		{"negative amount", uuid.New(), "INV-1", "-1", now, "INVALID_AMOUNT"},
		{"due before invoiced", uuid.New(), "INV-1", "10", now.AddDate(0, 0, -1), "INVALID_DUE_DATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoice(uuid.New(), tt.customerID, tt.number, usd(tt.amount), now, tt.dueAt)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

func TestInvoice_AddPayment(t *testing.T) {
	now := time.Now()
	inv, err := NewInvoice(uuid.New(), uuid.New(), "INV-002", usd("100"), now, now.AddDate(0, 0, 14))
	require.NoError(t, err)
	require.NoError(t, inv.MarkSent())

	_, err = inv.AddPayment(now, usd("0"), "")
	assert.Error(t, err)

	p, err := inv.AddPayment(now, usd("40"), "first")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, p.InvoiceID)
	assert.Equal(t, InvoiceStatusPartial, inv.Status)

	_, err = inv.AddPayment(now, usd("60"), "second")
	require.NoError(t, err)
	assert.True(t, inv.IsPaid())
	assert.Len(t, inv.Payments, 2)

	_, err = inv.AddPayment(now, usd("1"), "late")
	assert.Error(t, err)
}

func TestInvoice_ForeignPaymentNeedsExplicitSettle(t *testing.T) {
	now := time.Now()
	inv, err := NewInvoice(uuid.New(), uuid.New(), "INV-003", usd("100"), now, now)
	require.NoError(t, err)

	_, err = inv.AddPayment(now, eur("500"), "")
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPartial, inv.Status)

	inv.MarkPaid()
	assert.True(t, inv.IsPaid())
	assert.Error(t, inv.MarkSent())
}
