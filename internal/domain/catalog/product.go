package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared/valueobject"
)

// Product is the aggregate root of the inventory ledger.
// QuantityOnHand is never negative; the persistence layer enforces the
// same rule with a guarded decrement so the invariant survives
// concurrent acceptance of orders.
type Product struct {
	shared.BaseAggregateRoot
	Name           string          `gorm:"type:varchar(255);not null"`
	SKU            string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	QuantityOnHand int64           `gorm:"not null;default:0"`
	Active         bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with an opening stock level
func NewProduct(name, sku string, unitPrice decimal.Decimal, openingQuantity int64) (*Product, error) {
	name = strings.TrimSpace(name)
	sku = strings.ToUpper(strings.TrimSpace(sku))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if openingQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Opening quantity cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		UnitPrice:         unitPrice,
		QuantityOnHand:    openingQuantity,
		Active:            true,
	}

	return product, nil
}

// Price returns the current unit price as Money
func (p *Product) Price() valueobject.Money {
	return valueobject.NewMoneyINR(p.UnitPrice)
}

// Restock increases the quantity on hand
func (p *Product) Restock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	p.QuantityOnHand += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockReplenishedEvent(p, quantity))
	return nil
}

// ChangePrice updates the unit price. Invoices issued earlier keep the
// price that was current when they were generated.
func (p *Product) ChangePrice(newPrice decimal.Decimal) error {
	if newPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	oldPrice := p.UnitPrice
	p.UnitPrice = newPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if !oldPrice.Equal(newPrice) {
		p.AddDomainEvent(NewPriceChangedEvent(p, oldPrice, newPrice))
	}
	return nil
}

// Deactivate removes the product from sale without deleting its history
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// CanFulfill returns true if the quantity on hand covers the requested quantity
func (p *Product) CanFulfill(quantity int64) bool {
	return p.QuantityOnHand >= quantity
}

// AvailabilityOf reads an availability out of a product that may be missing.
// A nil product means an unknown id, which reports as zero availability.
func AvailabilityOf(p *Product) int64 {
	if p == nil {
		return 0
	}
	return p.QuantityOnHand
}
