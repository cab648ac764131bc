package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/billing"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Order, error) {
	var order billing.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate finds an order holding a row lock
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Order, error) {
	var order billing.Order
	query := applyRowLock(r.db.WithContext(ctx))
	if err := query.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	// Lines are loaded separately: FOR UPDATE cannot be combined with the
	// preload join on all dialects
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Find(&order.Lines).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Order, error) {
	var orders []billing.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.Order{}), filter)

	if err := query.Preload("Lines").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByClient finds orders for a client
func (r *GormOrderRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]billing.Order, error) {
	var orders []billing.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Order{}).Where("client_id = ?", clientID),
		filter,
	)

	if err := query.Preload("Lines").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order with its lines
func (r *GormOrderRepository) Save(ctx context.Context, order *billing.Order) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// SaveWithLock saves the order with optimistic locking
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *billing.Order) error {
	return saveAggregateWithLock(ctx, r.db, order, &billing.Order{}, "Order")
}

// Delete deletes an order and its lines
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&billing.OrderLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&billing.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&billing.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions including sorting and pagination
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, OrderSortFields, "placed_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return applyPagination(query, filter)
}

// applyFilterWithoutPagination applies filter conditions without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if clientID, ok := filter.Filters["client_id"].(uuid.UUID); ok {
		query = query.Where("client_id = ?", clientID)
	}
	return query
}

var _ billing.OrderRepository = (*GormOrderRepository)(nil)
