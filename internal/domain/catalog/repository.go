package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs finds multiple products by their IDs. Missing ids simply
	// do not appear in the result; callers treat them as zero availability.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindByIDsForUpdate finds multiple products by ID holding row locks
	// for the remainder of the enclosing transaction
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, product *Product) error

	// DecrementQuantity atomically decreases quantity on hand, refusing to
	// go below zero. Returns shared.ErrInsufficientStock when the guard fails.
	DecrementQuantity(ctx context.Context, id uuid.UUID, quantity int64) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
