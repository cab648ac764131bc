package billing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/billing"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared/valueobject"
)

// PaymentService records settlements against invoices
type PaymentService struct {
	uow            billing.UnitOfWork
	paymentRepo    billing.PaymentRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(uow billing.UnitOfWork, paymentRepo billing.PaymentRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		uow:         uow,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for audit integration
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordPayment settles an invoice. The payment insert and the invoice
// PENDING to PAID transition commit as one transaction; an invoice
// takes exactly one payment and it must match the total exactly.
func (s *PaymentService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	var (
		payment *billing.Payment
		invoice *billing.Invoice
	)

	err := s.uow.Execute(ctx, func(stores billing.Stores) error {
		var err error
		invoice, err = stores.Invoices.FindByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.IsPaid() {
			return shared.NewDomainError("ALREADY_PAID", "Invoice has already been paid")
		}

		received := valueobject.NewMoneyINR(req.Amount)
		if !received.Equals(invoice.TotalMoney()) {
			return shared.NewDomainError("AMOUNT_MISMATCH", "Payment amount must equal the invoice total").
				WithDetails(map[string]string{
					"expected": invoice.TotalMoney().StringFixed(2),
					"received": received.StringFixed(2),
				})
		}

		payment, err = billing.NewPayment(invoice.ID, invoice.ClientID, req.Amount, billing.PaymentMethod(req.Method), req.Reference)
		if err != nil {
			return err
		}

		if err := stores.Payments.Save(ctx, payment); err != nil {
			return err
		}

		if err := invoice.MarkPaid(payment.ID, payment.ReceivedAt); err != nil {
			return err
		}
		return stores.Invoices.SaveWithLock(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("invoice_number", invoice.Number),
		zap.String("payment_id", payment.ID.String()),
		zap.String("method", payment.Method.String()),
		zap.String("amount", payment.Amount.String()))

	if s.eventPublisher != nil {
		for _, event := range invoice.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		invoice.ClearDomainEvents()
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByInvoiceID retrieves the payment that settled an invoice
func (s *PaymentService) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) (*shared.Paginated[PaymentResponse], error) {
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
		domainFilter.OrderBy = "received_at"
	}
	if domainFilter.OrderDir == "" {
		domainFilter.OrderDir = "desc"
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Method != "" {
		domainFilter.Filters["method"] = filter.Method
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, ToPaymentResponse(&payments[i]))
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}
