package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/billing"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared/valueobject"
)

func newTestInvoice(t *testing.T, number string) *billing.Invoice {
	t.Helper()

	order, err := billing.NewOrder(uuid.New(), "")
	require.NoError(t, err)

	productID := uuid.New()
	require.NoError(t, order.AddLine(productID, 2))

	prices := billing.PriceList{
		productID: {Name: "Blue Pen", UnitPrice: valueobject.NewMoneyINR(decimal.NewFromInt(10))},
	}

	invoice, err := billing.NewInvoice(number, order, prices)
	require.NoError(t, err)
	return invoice
}

func TestGormInvoiceRepository_NextInvoiceNumber(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormInvoiceRepository(db.DB)
	ctx := context.Background()

	t.Run("allocates strictly increasing values", func(t *testing.T) {
		first, err := repo.NextInvoiceNumber(ctx)
		require.NoError(t, err)
		second, err := repo.NextInvoiceNumber(ctx)
		require.NoError(t, err)
		third, err := repo.NextInvoiceNumber(ctx)
		require.NoError(t, err)

		assert.Equal(t, first+1, second)
		assert.Equal(t, second+1, third)
	})

	t.Run("never reuses an allocated value", func(t *testing.T) {
		seen := make(map[int64]bool)
		for range 50 {
			seq, err := repo.NextInvoiceNumber(ctx)
			require.NoError(t, err)
			assert.False(t, seen[seq])
			seen[seq] = true
		}
		assert.Len(t, seen, 50)
	})
}

func TestGormInvoiceRepository_SaveAndFind(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormInvoiceRepository(db.DB)
	ctx := context.Background()

	invoice := newTestInvoice(t, "00001")
	require.NoError(t, repo.Save(ctx, invoice))

	t.Run("finds by id with lines", func(t *testing.T) {
		found, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, "00001", found.Number)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, int64(2), found.Lines[0].Quantity)
	})

	t.Run("finds by number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "00001")
		require.NoError(t, err)
		assert.Equal(t, invoice.ID, found.ID)
	})

	t.Run("finds by order id", func(t *testing.T) {
		found, err := repo.FindByOrderID(ctx, invoice.OrderID)
		require.NoError(t, err)
		assert.Equal(t, invoice.ID, found.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByNumber(ctx, "99999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormInvoiceRepository_FindByClient(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormInvoiceRepository(db.DB)
	ctx := context.Background()

	invoice := newTestInvoice(t, "00001")
	require.NoError(t, repo.Save(ctx, invoice))

	other := newTestInvoice(t, "00002")
	require.NoError(t, repo.Save(ctx, other))

	invoices, err := repo.FindByClient(ctx, invoice.ClientID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, invoice.ID, invoices[0].ID)
}
