package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/application/billing"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// GetByID retrieves an invoice by ID
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil && invoice.ClientID != *scope {
		h.NotFound(c, "Invoice not found")
		return
	}

	h.Success(c, invoice)
}

// GetByNumber retrieves an invoice by its zero-padded number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Invoice number required")
		return
	}

	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil && invoice.ClientID != *scope {
		h.NotFound(c, "Invoice not found")
		return
	}

	h.Success(c, invoice)
}

// GetByOrderID retrieves the invoice issued for an order
func (h *InvoiceHandler) GetByOrderID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	invoice, err := h.invoiceService.GetByOrderID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil && invoice.ClientID != *scope {
		h.NotFound(c, "Invoice not found")
		return
	}

	h.Success(c, invoice)
}

// List retrieves invoices with filtering and pagination
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil {
		filter.ClientID = scope
	}

	result, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
