package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/billing"
)

// GormUnitOfWork implements UnitOfWork by running the callback inside a
// database transaction with repositories bound to that transaction
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn against transaction-bound stores. Any error rolls the
// whole transaction back; nothing the callback wrote is visible outside
// until commit.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(stores billing.Stores) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(billing.Stores{
			Orders:   NewGormOrderRepository(tx),
			Invoices: NewGormInvoiceRepository(tx),
			Payments: NewGormPaymentRepository(tx),
			Products: NewGormProductRepository(tx),
		})
	})
}

var _ billing.UnitOfWork = (*GormUnitOfWork)(nil)
