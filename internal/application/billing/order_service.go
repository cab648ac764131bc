package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/billing"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// OrderService handles order intake operations
type OrderService struct {
	orderRepo      billing.OrderRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo billing.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// SetEventPublisher sets the event publisher for audit integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create places a new order. Placing never touches stock; availability
// is judged later at evaluation or acceptance.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	order, err := billing.NewOrder(req.ClientID, req.Remark)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Lines {
		if err := order.AddLine(line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "created_at"
	}
	if domainFilter.OrderDir == "" {
		domainFilter.OrderDir = "desc"
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, ToOrderResponse(&orders[i]))
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Delete removes an order that has not been fulfilled
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !order.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Fulfilled orders cannot be deleted")
	}

	return s.orderRepo.Delete(ctx, id)
}

func (s *OrderService) publishEvents(ctx context.Context, order *billing.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}
