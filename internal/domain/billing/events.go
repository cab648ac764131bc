package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOrder   = "Order"
	AggregateTypeInvoice = "Invoice"
)

// Event type constants
const (
	EventTypeOrderPlaced    = "OrderPlaced"
	EventTypeOrderFulfilled = "OrderFulfilled"
	EventTypeInvoiceCreated = "InvoiceCreated"
	EventTypeInvoicePaid    = "InvoicePaid"
)

// OrderPlacedEvent is raised when a client places a new order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	ClientID  uuid.UUID `json:"client_id"`
	LineCount int       `json:"line_count"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		ClientID:        order.ClientID,
		LineCount:       len(order.Lines),
	}
}

// EventType returns the event type name
func (e *OrderPlacedEvent) EventType() string {
	return EventTypeOrderPlaced
}

// OrderFulfilledEvent is raised when an order is accepted and invoiced
type OrderFulfilledEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	ClientID  uuid.UUID `json:"client_id"`
	InvoiceID uuid.UUID `json:"invoice_id"`
}

// NewOrderFulfilledEvent creates a new OrderFulfilledEvent
func NewOrderFulfilledEvent(order *Order, invoiceID uuid.UUID) *OrderFulfilledEvent {
	return &OrderFulfilledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderFulfilled, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		ClientID:        order.ClientID,
		InvoiceID:       invoiceID,
	}
}

// EventType returns the event type name
func (e *OrderFulfilledEvent) EventType() string {
	return EventTypeOrderFulfilled
}

// InvoiceCreatedEvent is raised when an invoice is generated for an order
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Number    string          `json:"number"`
	OrderID   uuid.UUID       `json:"order_id"`
	ClientID  uuid.UUID       `json:"client_id"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(invoice *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		Number:          invoice.Number,
		OrderID:         invoice.OrderID,
		ClientID:        invoice.ClientID,
		Subtotal:        invoice.Subtotal,
		TaxAmount:       invoice.TaxAmount,
		Total:           invoice.Total,
	}
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return EventTypeInvoiceCreated
}

// InvoicePaidEvent is raised when a payment settles an invoice
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Number    string          `json:"number"`
	PaymentID uuid.UUID       `json:"payment_id"`
	Total     decimal.Decimal `json:"total"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(invoice *Invoice, paymentID uuid.UUID) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		Number:          invoice.Number,
		PaymentID:       paymentID,
		Total:           invoice.Total,
	}
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return EventTypeInvoicePaid
}
