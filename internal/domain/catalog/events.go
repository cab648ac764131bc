package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductRegistered = "ProductRegistered"
	EventTypeStockReplenished  = "StockReplenished"
	EventTypePriceChanged      = "PriceChanged"
)

// ProductRegisteredEvent is raised when a new product enters the catalog
type ProductRegisteredEvent struct {
	shared.BaseDomainEvent
	ProductID       uuid.UUID       `json:"product_id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	OpeningQuantity int64           `json:"opening_quantity"`
}

// NewProductRegisteredEvent creates a new ProductRegisteredEvent
func NewProductRegisteredEvent(product *Product) *ProductRegisteredEvent {
	return &ProductRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductRegistered, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		SKU:             product.SKU,
		UnitPrice:       product.UnitPrice,
		OpeningQuantity: product.QuantityOnHand,
	}
}

// EventType returns the event type name
func (e *ProductRegisteredEvent) EventType() string {
	return EventTypeProductRegistered
}

// StockReplenishedEvent is raised when stock is added to a product
type StockReplenishedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	NewQuantity int64     `json:"new_quantity"`
}

// NewStockReplenishedEvent creates a new StockReplenishedEvent
func NewStockReplenishedEvent(product *Product, quantity int64) *StockReplenishedEvent {
	return &StockReplenishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReplenished, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Quantity:        quantity,
		NewQuantity:     product.QuantityOnHand,
	}
}

// EventType returns the event type name
func (e *StockReplenishedEvent) EventType() string {
	return EventTypeStockReplenished
}

// PriceChangedEvent is raised when a product's unit price changes
type PriceChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
}

// NewPriceChangedEvent creates a new PriceChangedEvent
func NewPriceChangedEvent(product *Product, oldPrice, newPrice decimal.Decimal) *PriceChangedEvent {
	return &PriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePriceChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		OldPrice:        oldPrice,
		NewPrice:        newPrice,
	}
}

// EventType returns the event type name
func (e *PriceChangedEvent) EventType() string {
	return EventTypePriceChanged
}
