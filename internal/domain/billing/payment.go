package billing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodUPI, PaymentMethodCheque:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// RequiresReference returns true when the caller must supply the
// external payment reference. Cash is the only method that generates
// its own.
func (m PaymentMethod) RequiresReference() bool {
	return m != PaymentMethodCash
}

// Payment records the settlement of an invoice. An invoice accepts at
// most one payment; the persistence layer backs this with a unique
// index on invoice_id.
type Payment struct {
	shared.BaseEntity
	InvoiceID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method     PaymentMethod   `gorm:"type:varchar(20);not null"`
	Reference  string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	ReceivedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment record against an invoice. For CASH the
// reference is generated; every other method requires a non-empty
// caller-supplied reference.
func NewPayment(invoiceID, clientID uuid.UUID, amount decimal.Decimal, method PaymentMethod, reference string) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", fmt.Sprintf("Unknown payment method: %s", method))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	reference = strings.TrimSpace(reference)
	if method == PaymentMethodCash {
		reference = generateCashReference()
	} else if reference == "" {
		return nil, shared.NewDomainError("MISSING_REFERENCE", fmt.Sprintf("Payment method %s requires a payment reference", method))
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		InvoiceID:  invoiceID,
		ClientID:   clientID,
		Amount:     amount,
		Method:     method,
		Reference:  reference,
		ReceivedAt: time.Now(),
	}, nil
}

// generateCashReference produces a unique reference for cash payments
func generateCashReference() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("CASH-%d", time.Now().UnixNano())
	}
	return "CASH-" + strings.ToUpper(hex.EncodeToString(buf))
}
