package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/catalog"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate finds an order holding a row lock for the
	// remainder of the enclosing transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll finds all orders with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByClient finds orders for a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order with its lines
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *Order) error

	// Delete deletes an order and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by ID with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForUpdate finds an invoice holding a row lock for the
	// remainder of the enclosing transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its invoice number
	FindByNumber(ctx context.Context, number string) (*Invoice, error)

	// FindByOrderID finds the invoice generated for an order
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Invoice, error)

	// FindAll finds all invoices with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// FindByClient finds invoices for a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// NextInvoiceNumber atomically allocates the next value of the
	// invoice number sequence. Allocated values are strictly increasing
	// and never reused, even across concurrent transactions.
	NextInvoiceNumber(ctx context.Context) (int64, error)

	// Save creates or updates an invoice with its lines
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByInvoiceID finds the payment that settled an invoice
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*Payment, error)

	// FindByReference finds a payment by its external reference
	FindByReference(ctx context.Context, reference string) (*Payment, error)

	// FindAll finds all payments with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)

	// FindByClient finds payments for a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Payment, error)

	// Save creates a payment record
	Save(ctx context.Context, payment *Payment) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// Stores bundles the repositories bound to one transaction
type Stores struct {
	Orders   OrderRepository
	Invoices InvoiceRepository
	Payments PaymentRepository
	Products catalog.ProductRepository
}

// UnitOfWork runs a function against transaction-bound stores. The
// function either commits as a whole or leaves no trace: reconciliation
// depends on this to never expose partial state.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(stores Stores) error) error
}
