package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared/valueobject"
)

// TaxRate is the flat tax applied to every invoice subtotal (18%)
var TaxRate = decimal.NewFromFloat(0.18)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusPending:
		return target == InvoiceStatusPaid
	case InvoiceStatusPaid:
		return false // Terminal state
	}
	return false
}

// FormatInvoiceNumber renders a sequence value as a zero-padded
// invoice number of width 5 ("00001", "00042")
func FormatInvoiceNumber(seq int64) string {
	return fmt.Sprintf("%05d", seq)
}

// PricedProduct carries the catalog data an invoice line freezes
type PricedProduct struct {
	Name      string
	UnitPrice valueobject.Money
}

// PriceList maps product ids to their current catalog pricing
type PriceList map[uuid.UUID]PricedProduct

// InvoiceLine is a frozen copy of an order line priced at invoicing
// time. Later catalog changes never touch it.
type InvoiceLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// Invoice is the aggregate root for billing documents
type Invoice struct {
	shared.BaseAggregateRoot
	Number    string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status    InvoiceStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IssuedAt  time.Time       `gorm:"not null"`
	PaidAt    *time.Time

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice generates an invoice for an order, freezing the current
// catalog name and unit price of every line. Every product on the
// order must be present in the price list.
func NewInvoice(number string, order *Order, prices PriceList) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if len(order.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Cannot invoice an order without lines")
	}

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		OrderID:           order.ID,
		ClientID:          order.ClientID,
		Status:            InvoiceStatusPending,
		IssuedAt:          time.Now(),
		Lines:             make([]InvoiceLine, 0, len(order.Lines)),
	}

	subtotal := valueobject.ZeroINR()
	for _, line := range order.Lines {
		priced, ok := prices[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("UNKNOWN_PRODUCT", fmt.Sprintf("No catalog price for product %s", line.ProductID))
		}
		amount := priced.UnitPrice.MultiplyByInt(line.Quantity)
		invoice.Lines = append(invoice.Lines, InvoiceLine{
			ID:          uuid.New(),
			InvoiceID:   invoice.ID,
			ProductID:   line.ProductID,
			ProductName: priced.Name,
			Quantity:    line.Quantity,
			UnitPrice:   priced.UnitPrice.Amount(),
			Amount:      amount.Amount(),
			CreatedAt:   time.Now(),
		})
		sum, err := subtotal.Add(amount)
		if err != nil {
			return nil, shared.NewDomainError("CURRENCY_MISMATCH", fmt.Sprintf("Invoice lines must share one currency: %v", err))
		}
		subtotal = sum
	}

	tax := subtotal.Multiply(TaxRate).Round(2)
	subtotal = subtotal.Round(2)
	invoice.Subtotal = subtotal.Amount()
	invoice.TaxAmount = tax.Amount()
	invoice.Total = subtotal.MustAdd(tax).Amount()

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))
	return invoice, nil
}

// MarkPaid transitions the invoice to PAID, recording the settling
// payment. Only valid from PENDING.
func (i *Invoice) MarkPaid(paymentID uuid.UUID, paidAt time.Time) error {
	if !i.Status.CanTransitionTo(InvoiceStatusPaid) {
		return shared.NewDomainError("ALREADY_PAID", "Invoice has already been paid")
	}
	if paymentID == uuid.Nil {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment ID cannot be empty")
	}

	i.Status = InvoiceStatusPaid
	i.PaidAt = &paidAt
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoicePaidEvent(i, paymentID))
	return nil
}

// IsPaid returns true if the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// TotalMoney returns the invoice total as Money
func (i *Invoice) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.Total)
}
