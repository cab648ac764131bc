package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// OrderStatus represents the status of a client order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusFulfilled OrderStatus = "FULFILLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusFulfilled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPlaced:
		return target == OrderStatusFulfilled
	case OrderStatusFulfilled:
		return false // Terminal state
	}
	return false
}

// OrderLine represents a requested product and quantity on an order.
// Lines carry no price; prices are read from the catalog and frozen
// only when the invoice is generated.
type OrderLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int64     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewOrderLine creates a new order line
func NewOrderLine(orderID, productID uuid.UUID, quantity int64) (*OrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	return &OrderLine{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Order is the aggregate root for client order intake.
// Placing an order never reserves stock; availability is judged at
// evaluation or acceptance time against the live ledger.
type Order struct {
	shared.BaseAggregateRoot
	ClientID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:'PLACED';index"`
	InvoiceID *uuid.UUID  `gorm:"type:uuid"`
	PlacedAt  time.Time   `gorm:"not null"`
	Remark    string      `gorm:"type:text"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in PLACED status
func NewOrder(clientID uuid.UUID, remark string) (*Order, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Status:            OrderStatusPlaced,
		PlacedAt:          time.Now(),
		Remark:            remark,
		Lines:             make([]OrderLine, 0),
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))
	return order, nil
}

// AddLine adds a line to the order. A product may appear on at most one
// line of an order.
func (o *Order) AddLine(productID uuid.UUID, quantity int64) error {
	if o.Status != OrderStatusPlaced {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a fulfilled order")
	}
	for _, line := range o.Lines {
		if line.ProductID == productID {
			return shared.NewDomainError("DUPLICATE_LINE", "Product already present on this order")
		}
	}

	line, err := NewOrderLine(o.ID, productID, quantity)
	if err != nil {
		return err
	}

	o.Lines = append(o.Lines, *line)
	o.UpdatedAt = time.Now()
	return nil
}

// Validate checks that the order is complete enough to submit
func (o *Order) Validate() error {
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must have at least one line")
	}
	return nil
}

// MarkFulfilled transitions the order to FULFILLED and links the invoice
// that settled it. Only valid from PLACED.
func (o *Order) MarkFulfilled(invoiceID uuid.UUID) error {
	if !o.Status.CanTransitionTo(OrderStatusFulfilled) {
		return shared.NewDomainError("INVALID_STATE", "Order has already been fulfilled")
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}

	o.Status = OrderStatusFulfilled
	o.InvoiceID = &invoiceID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderFulfilledEvent(o, invoiceID))
	return nil
}

// CanDelete returns true while the order is still pending fulfillment
func (o *Order) CanDelete() bool {
	return o.Status == OrderStatusPlaced
}

// IsFulfilled returns true if the order has been fulfilled
func (o *Order) IsFulfilled() bool {
	return o.Status == OrderStatusFulfilled
}

// LineQuantities returns the requested quantity per product id
func (o *Order) LineQuantities() map[uuid.UUID]int64 {
	quantities := make(map[uuid.UUID]int64, len(o.Lines))
	for _, line := range o.Lines {
		quantities[line.ProductID] = line.Quantity
	}
	return quantities
}

// ProductIDs returns the distinct product ids referenced by the order lines
func (o *Order) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Lines))
	for _, line := range o.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}
