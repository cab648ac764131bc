package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

func TestNewOrder(t *testing.T) {
	t.Run("creates order in placed status", func(t *testing.T) {
		clientID := uuid.New()
		order, err := NewOrder(clientID, "september stationery run")
		require.NoError(t, err)
		assert.Equal(t, OrderStatusPlaced, order.Status)
		assert.Equal(t, clientID, order.ClientID)
		assert.Nil(t, order.InvoiceID)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("rejects empty client", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CLIENT", domainErr.Code)
	})
}

func TestOrderAddLine(t *testing.T) {
	t.Run("adds valid lines", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "")
		require.NoError(t, order.AddLine(uuid.New(), 5))
		require.NoError(t, order.AddLine(uuid.New(), 2))
		assert.Len(t, order.Lines, 2)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "")
		err := order.AddLine(uuid.New(), 0)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "")
		assert.Error(t, order.AddLine(uuid.New(), -3))
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "")
		productID := uuid.New()
		require.NoError(t, order.AddLine(productID, 5))
		err := order.AddLine(productID, 3)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_LINE", domainErr.Code)
	})

	t.Run("rejects lines on fulfilled order", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "")
		require.NoError(t, order.AddLine(uuid.New(), 5))
		require.NoError(t, order.MarkFulfilled(uuid.New()))
		assert.Error(t, order.AddLine(uuid.New(), 1))
	})
}

func TestOrderValidate(t *testing.T) {
	order, _ := NewOrder(uuid.New(), "")
	err := order.Validate()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_ORDER", domainErr.Code)

	require.NoError(t, order.AddLine(uuid.New(), 1))
	assert.NoError(t, order.Validate())
}

func TestOrderMarkFulfilled(t *testing.T) {
	t.Run("transitions placed order", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "")
		require.NoError(t, order.AddLine(uuid.New(), 5))
		order.ClearDomainEvents()

		invoiceID := uuid.New()
		require.NoError(t, order.MarkFulfilled(invoiceID))
		assert.Equal(t, OrderStatusFulfilled, order.Status)
		require.NotNil(t, order.InvoiceID)
		assert.Equal(t, invoiceID, *order.InvoiceID)
		assert.True(t, order.IsFulfilled())

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderFulfilled, events[0].EventType())
	})

	t.Run("rejects second fulfillment", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "")
		require.NoError(t, order.MarkFulfilled(uuid.New()))
		err := order.MarkFulfilled(uuid.New())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("rejects nil invoice id", func(t *testing.T) {
		order, _ := NewOrder(uuid.New(), "")
		assert.Error(t, order.MarkFulfilled(uuid.Nil))
	})
}

func TestOrderCanDelete(t *testing.T) {
	order, _ := NewOrder(uuid.New(), "")
	assert.True(t, order.CanDelete())

	require.NoError(t, order.MarkFulfilled(uuid.New()))
	assert.False(t, order.CanDelete())
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPlaced.CanTransitionTo(OrderStatusFulfilled))
	assert.False(t, OrderStatusFulfilled.CanTransitionTo(OrderStatusPlaced))
	assert.True(t, OrderStatusPlaced.IsValid())
	assert.False(t, OrderStatus("SHIPPED").IsValid())
}

func TestOrderLineQuantities(t *testing.T) {
	order, _ := NewOrder(uuid.New(), "")
	a, b := uuid.New(), uuid.New()
	require.NoError(t, order.AddLine(a, 5))
	require.NoError(t, order.AddLine(b, 2))

	quantities := order.LineQuantities()
	assert.Equal(t, int64(5), quantities[a])
	assert.Equal(t, int64(2), quantities[b])
	assert.ElementsMatch(t, []uuid.UUID{a, b}, order.ProductIDs())
}
