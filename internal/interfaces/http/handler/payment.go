package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/application/billing"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
	invoiceService *billingapp.InvoiceService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService, invoiceService *billingapp.InvoiceService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		invoiceService: invoiceService,
	}
}

// Record settles a pending invoice with a single exact-amount payment
func (h *PaymentHandler) Record(c *gin.Context) {
	invoiceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if scope := clientScope(c); scope != nil {
		invoice, err := h.invoiceService.GetByID(c.Request.Context(), invoiceID)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		if invoice.ClientID != *scope {
			h.NotFound(c, "Invoice not found")
			return
		}
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// GetByID retrieves a payment by ID
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil && payment.ClientID != *scope {
		h.NotFound(c, "Payment not found")
		return
	}

	h.Success(c, payment)
}

// GetByInvoiceID retrieves the payment that settled an invoice
func (h *PaymentHandler) GetByInvoiceID(c *gin.Context) {
	invoiceID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	payment, err := h.paymentService.GetByInvoiceID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil && payment.ClientID != *scope {
		h.NotFound(c, "Payment not found")
		return
	}

	h.Success(c, payment)
}

// List retrieves payments with filtering and pagination
func (h *PaymentHandler) List(c *gin.Context) {
	var filter billingapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	if scope := clientScope(c); scope != nil {
		filter.ClientID = scope
	}

	result, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
