package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/catalog"
)

// CreateProductRequest represents a request to register a product
type CreateProductRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=255"`
	SKU             string          `json:"sku" binding:"required,min=1,max=64"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"required"`
	OpeningQuantity int64           `json:"opening_quantity" binding:"min=0"`
}

// RestockRequest represents a request to add stock to a product
type RestockRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// ChangePriceRequest represents a request to update a product's unit price
type ChangePriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	QuantityOnHand int64           `json:"quantity_on_hand"`
	Active         bool            `json:"active"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AvailabilityResponse reports the availability of a product id.
// Unknown ids report zero availability rather than an error.
type AvailabilityResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Available int64     `json:"available"`
	Known     bool      `json:"known"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		SKU:            p.SKU,
		UnitPrice:      p.UnitPrice,
		QuantityOnHand: p.QuantityOnHand,
		Active:         p.Active,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
