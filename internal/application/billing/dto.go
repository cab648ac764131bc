package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/billing"
)

// ==================== Order DTOs ====================

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	ClientID uuid.UUID              `json:"client_id" binding:"required"`
	Lines    []CreateOrderLineInput `json:"lines" binding:"required,min=1,dive"`
	Remark   string                 `json:"remark" binding:"max=500"`
}

// CreateOrderLineInput represents a line in the create order request
type CreateOrderLineInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// OrderListFilter represents filter options for order list
type OrderListFilter struct {
	ClientID *uuid.UUID `form:"client_id"`
	Status   string     `form:"status" binding:"omitempty,oneof=PLACED FULFILLED"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	ClientID  uuid.UUID           `json:"client_id"`
	Status    string              `json:"status"`
	InvoiceID *uuid.UUID          `json:"invoice_id,omitempty"`
	Lines     []OrderLineResponse `json:"lines"`
	Remark    string              `json:"remark,omitempty"`
	PlacedAt  time.Time           `json:"placed_at"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(order *billing.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return OrderResponse{
		ID:        order.ID,
		ClientID:  order.ClientID,
		Status:    order.Status.String(),
		InvoiceID: order.InvoiceID,
		Lines:     lines,
		Remark:    order.Remark,
		PlacedAt:  order.PlacedAt,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

// ==================== Evaluation DTOs ====================

// LineVerdictResponse represents the fulfillment verdict for one line
type LineVerdictResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	Requested   int64     `json:"requested"`
	Available   int64     `json:"available"`
	Short       int64     `json:"short"`
	Fulfillable bool      `json:"fulfillable"`
}

// EvaluationResponse represents an order fulfillment evaluation
type EvaluationResponse struct {
	OrderID     uuid.UUID             `json:"order_id"`
	Fulfillable bool                  `json:"fulfillable"`
	Lines       []LineVerdictResponse `json:"lines"`
}

// ToEvaluationResponse converts a domain evaluation to a response DTO
func ToEvaluationResponse(eval billing.Evaluation) EvaluationResponse {
	lines := make([]LineVerdictResponse, 0, len(eval.Lines))
	for _, line := range eval.Lines {
		lines = append(lines, LineVerdictResponse{
			ProductID:   line.ProductID,
			Requested:   line.Requested,
			Available:   line.Available,
			Short:       line.Short,
			Fulfillable: line.Fulfillable,
		})
	}
	return EvaluationResponse{
		OrderID:     eval.OrderID,
		Fulfillable: eval.Fulfillable,
		Lines:       lines,
	}
}

// ==================== Invoice DTOs ====================

// InvoiceListFilter represents filter options for invoice list
type InvoiceListFilter struct {
	ClientID *uuid.UUID `form:"client_id"`
	Status   string     `form:"status" binding:"omitempty,oneof=PENDING PAID"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceLineResponse represents a frozen invoice line in API responses
type InvoiceLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID        uuid.UUID             `json:"id"`
	Number    string                `json:"number"`
	OrderID   uuid.UUID             `json:"order_id"`
	ClientID  uuid.UUID             `json:"client_id"`
	Status    string                `json:"status"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
	TaxAmount decimal.Decimal       `json:"tax_amount"`
	Total     decimal.Decimal       `json:"total"`
	Lines     []InvoiceLineResponse `json:"lines"`
	IssuedAt  time.Time             `json:"issued_at"`
	PaidAt    *time.Time            `json:"paid_at,omitempty"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(invoice *billing.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(invoice.Lines))
	for _, line := range invoice.Lines {
		lines = append(lines, InvoiceLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Amount:      line.Amount,
		})
	}
	return InvoiceResponse{
		ID:        invoice.ID,
		Number:    invoice.Number,
		OrderID:   invoice.OrderID,
		ClientID:  invoice.ClientID,
		Status:    invoice.Status.String(),
		Subtotal:  invoice.Subtotal,
		TaxAmount: invoice.TaxAmount,
		Total:     invoice.Total,
		Lines:     lines,
		IssuedAt:  invoice.IssuedAt,
		PaidAt:    invoice.PaidAt,
	}
}

// ==================== Payment DTOs ====================

// RecordPaymentRequest represents a request to settle an invoice
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CARD UPI CHEQUE"`
	Reference string          `json:"reference" binding:"max=64"`
}

// PaymentListFilter represents filter options for payment list
type PaymentListFilter struct {
	ClientID *uuid.UUID `form:"client_id"`
	Method   string     `form:"method" binding:"omitempty,oneof=CASH BANK_TRANSFER CARD UPI CHEQUE"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	ClientID   uuid.UUID       `json:"client_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference"`
	ReceivedAt time.Time       `json:"received_at"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(payment *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         payment.ID,
		InvoiceID:  payment.InvoiceID,
		ClientID:   payment.ClientID,
		Amount:     payment.Amount,
		Method:     payment.Method.String(),
		Reference:  payment.Reference,
		ReceivedAt: payment.ReceivedAt,
	}
}
