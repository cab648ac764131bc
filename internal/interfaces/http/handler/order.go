package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/application/billing"
)

// OrderHandler handles order intake and reconciliation API endpoints
type OrderHandler struct {
	BaseHandler
	orderService          *billingapp.OrderService
	reconciliationService *billingapp.ReconciliationService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *billingapp.OrderService, reconciliationService *billingapp.ReconciliationService) *OrderHandler {
	return &OrderHandler{
		orderService:          orderService,
		reconciliationService: reconciliationService,
	}
}

// Create places a new order. Stock is not touched until the order is
// accepted. Client tokens always order for themselves.
func (h *OrderHandler) Create(c *gin.Context) {
	var req billingapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil {
		req.ClientID = *scope
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID retrieves an order by ID
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil && order.ClientID != *scope {
		h.NotFound(c, "Order not found")
		return
	}

	h.Success(c, order)
}

// List retrieves orders with filtering and pagination
func (h *OrderHandler) List(c *gin.Context) {
	var filter billingapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil {
		filter.ClientID = scope
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Delete removes an order that has not been fulfilled
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if scope := clientScope(c); scope != nil {
		order, err := h.orderService.GetByID(c.Request.Context(), id)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		if order.ClientID != *scope {
			h.NotFound(c, "Order not found")
			return
		}
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Evaluation reports whether the order could be fulfilled from current
// stock. Read-only: repeating the call changes nothing.
func (h *OrderHandler) Evaluation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if scope := clientScope(c); scope != nil {
		order, err := h.orderService.GetByID(c.Request.Context(), id)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		if order.ClientID != *scope {
			h.NotFound(c, "Order not found")
			return
		}
	}

	evaluation, err := h.reconciliationService.EvaluateOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, evaluation)
}

// Accept runs the reconciliation for an order: invoice issuance, stock
// decrement and fulfillment as one transaction. Rejections carry the
// per-line shortfall in the error details.
func (h *OrderHandler) Accept(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	invoice, err := h.reconciliationService.AcceptOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}
