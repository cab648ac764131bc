package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

func TestOrderServiceCreate(t *testing.T) {
	t.Run("places order without touching stock", func(t *testing.T) {
		f := newBillingFixture(t)
		ctx := context.Background()

		pen := f.addProduct(t, "Blue Pen", "PEN-BLU", 100, 3)

		// placing may exceed available stock on purpose
		resp, err := f.orderSvc.Create(ctx, CreateOrderRequest{
			ClientID: uuid.New(),
			Lines: []CreateOrderLineInput{
				{ProductID: pen.ID, Quantity: 50},
			},
			Remark: "rush order",
		})
		require.NoError(t, err)

		assert.Equal(t, "PLACED", resp.Status)
		assert.Equal(t, "rush order", resp.Remark)
		require.Len(t, resp.Lines, 1)

		stored, err := f.products.FindByID(ctx, pen.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stored.QuantityOnHand)
	})

	t.Run("rejects duplicate product lines", func(t *testing.T) {
		f := newBillingFixture(t)
		productID := uuid.New()

		_, err := f.orderSvc.Create(context.Background(), CreateOrderRequest{
			ClientID: uuid.New(),
			Lines: []CreateOrderLineInput{
				{ProductID: productID, Quantity: 1},
				{ProductID: productID, Quantity: 2},
			},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_LINE", domainErr.Code)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		f := newBillingFixture(t)

		_, err := f.orderSvc.Create(context.Background(), CreateOrderRequest{
			ClientID: uuid.New(),
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_ORDER", domainErr.Code)
	})
}

func TestOrderServiceList(t *testing.T) {
	f := newBillingFixture(t)
	ctx := context.Background()

	clientID := uuid.New()
	f.placeOrder(t, clientID, map[uuid.UUID]int64{uuid.New(): 1})
	f.placeOrder(t, clientID, map[uuid.UUID]int64{uuid.New(): 2})
	f.placeOrder(t, uuid.New(), map[uuid.UUID]int64{uuid.New(): 3})

	t.Run("scoped to client", func(t *testing.T) {
		page, err := f.orderSvc.List(ctx, OrderListFilter{ClientID: &clientID})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("all orders", func(t *testing.T) {
		page, err := f.orderSvc.List(ctx, OrderListFilter{})
		require.NoError(t, err)
		assert.Len(t, page.Items, 3)
	})

	t.Run("by status", func(t *testing.T) {
		page, err := f.orderSvc.List(ctx, OrderListFilter{Status: "FULFILLED"})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})
}

func TestOrderServiceDelete(t *testing.T) {
	t.Run("deletes a placed order", func(t *testing.T) {
		f := newBillingFixture(t)
		ctx := context.Background()

		order := f.placeOrder(t, uuid.New(), map[uuid.UUID]int64{uuid.New(): 1})

		require.NoError(t, f.orderSvc.Delete(ctx, order.ID))

		_, err := f.orderSvc.GetByID(ctx, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("refuses to delete a fulfilled order", func(t *testing.T) {
		f := newBillingFixture(t)
		ctx := context.Background()

		pen := f.addProduct(t, "Blue Pen", "PEN-BLU", 100, 10)
		order := f.placeOrder(t, uuid.New(), map[uuid.UUID]int64{pen.ID: 1})

		_, err := f.reconciler.AcceptOrder(ctx, order.ID)
		require.NoError(t, err)

		err = f.orderSvc.Delete(ctx, order.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}
