package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/billing"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/catalog"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

func TestGormUnitOfWork_CommitsAsAWhole(t *testing.T) {
	db := newTestDatabase(t)
	uow := NewGormUnitOfWork(db.DB)
	ctx := context.Background()

	product, err := catalog.NewProduct("Blue Pen", "PEN-BLU", decimal.NewFromInt(10), 5)
	require.NoError(t, err)

	order, err := billing.NewOrder(uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, order.AddLine(product.ID, 2))

	err = uow.Execute(ctx, func(stores billing.Stores) error {
		if err := stores.Products.Save(ctx, product); err != nil {
			return err
		}
		if err := stores.Orders.Save(ctx, order); err != nil {
			return err
		}
		return stores.Products.DecrementQuantity(ctx, product.ID, 2)
	})
	require.NoError(t, err)

	stored, err := NewGormProductRepository(db.DB).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.QuantityOnHand)

	loaded, err := NewGormOrderRepository(db.DB).FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Lines, 1)
}

func TestGormUnitOfWork_RollsBackEverythingOnError(t *testing.T) {
	db := newTestDatabase(t)
	uow := NewGormUnitOfWork(db.DB)
	ctx := context.Background()

	product, err := catalog.NewProduct("Blue Pen", "PEN-BLU", decimal.NewFromInt(10), 5)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db.DB).Save(ctx, product))

	order, err := billing.NewOrder(uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, order.AddLine(product.ID, 2))

	err = uow.Execute(ctx, func(stores billing.Stores) error {
		if err := stores.Orders.Save(ctx, order); err != nil {
			return err
		}
		if err := stores.Products.DecrementQuantity(ctx, product.ID, 2); err != nil {
			return err
		}
		// ask for more than remains to force a mid-transaction failure
		return stores.Products.DecrementQuantity(ctx, product.ID, 10)
	})
	require.ErrorIs(t, err, shared.ErrInsufficientStock)

	// nothing from the failed transaction is visible
	stored, err := NewGormProductRepository(db.DB).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.QuantityOnHand)

	_, err = NewGormOrderRepository(db.DB).FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUnitOfWork_PropagatesCallbackError(t *testing.T) {
	db := newTestDatabase(t)
	uow := NewGormUnitOfWork(db.DB)

	sentinel := errors.New("callback failed")
	err := uow.Execute(context.Background(), func(stores billing.Stores) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestGormUnitOfWork_InvoiceNumberSurvivesOnlyOnCommit(t *testing.T) {
	db := newTestDatabase(t)
	uow := NewGormUnitOfWork(db.DB)
	ctx := context.Background()

	var allocated int64
	err := uow.Execute(ctx, func(stores billing.Stores) error {
		var err error
		allocated, err = stores.Invoices.NextInvoiceNumber(ctx)
		require.NoError(t, err)
		return errors.New("abort")
	})
	require.Error(t, err)
	assert.Equal(t, int64(1), allocated)

	// the rolled-back allocation is reissued by the next transaction
	next, err := NewGormInvoiceRepository(db.DB).NextInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}
