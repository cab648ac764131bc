package billing

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

func TestNewPayment(t *testing.T) {
	invoiceID := uuid.New()
	clientID := uuid.New()
	amount := decimal.NewFromInt(590)

	t.Run("cash generates its own reference", func(t *testing.T) {
		payment, err := NewPayment(invoiceID, clientID, amount, PaymentMethodCash, "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(payment.Reference, "CASH-"))
		assert.Equal(t, PaymentMethodCash, payment.Method)
		assert.True(t, payment.Amount.Equal(amount))
	})

	t.Run("cash ignores caller-supplied reference", func(t *testing.T) {
		payment, err := NewPayment(invoiceID, clientID, amount, PaymentMethodCash, "my-ref")
		require.NoError(t, err)
		assert.NotEqual(t, "my-ref", payment.Reference)
		assert.True(t, strings.HasPrefix(payment.Reference, "CASH-"))
	})

	t.Run("cash references are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 50 {
			payment, err := NewPayment(invoiceID, clientID, amount, PaymentMethodCash, "")
			require.NoError(t, err)
			assert.False(t, seen[payment.Reference], "duplicate reference %s", payment.Reference)
			seen[payment.Reference] = true
		}
	})

	t.Run("bank transfer requires reference", func(t *testing.T) {
		_, err := NewPayment(invoiceID, clientID, amount, PaymentMethodBankTransfer, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_REFERENCE", domainErr.Code)
	})

	t.Run("whitespace reference counts as missing", func(t *testing.T) {
		_, err := NewPayment(invoiceID, clientID, amount, PaymentMethodUPI, "   ")
		assert.Error(t, err)
	})

	t.Run("non-cash keeps supplied reference", func(t *testing.T) {
		payment, err := NewPayment(invoiceID, clientID, amount, PaymentMethodUPI, "UPI-TXN-42")
		require.NoError(t, err)
		assert.Equal(t, "UPI-TXN-42", payment.Reference)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(invoiceID, clientID, amount, PaymentMethod("BARTER"), "x")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_METHOD", domainErr.Code)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(invoiceID, clientID, decimal.Zero, PaymentMethodCash, "")
		assert.Error(t, err)
		_, err = NewPayment(invoiceID, clientID, decimal.NewFromInt(-10), PaymentMethodCash, "")
		assert.Error(t, err)
	})

	t.Run("rejects nil invoice", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, clientID, amount, PaymentMethodCash, "")
		assert.Error(t, err)
	})
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.True(t, PaymentMethodCheque.IsValid())
	assert.False(t, PaymentMethod("BARTER").IsValid())

	assert.False(t, PaymentMethodCash.RequiresReference())
	assert.True(t, PaymentMethodBankTransfer.RequiresReference())
	assert.True(t, PaymentMethodCard.RequiresReference())
}
