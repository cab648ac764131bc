package billing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/billing"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/catalog"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// ReconciliationService orchestrates the order-to-invoice flow: the
// read-only evaluation and the transactional acceptance that turns a
// fulfillable order into an invoice and a stock decrement.
type ReconciliationService struct {
	uow            billing.UnitOfWork
	orderRepo      billing.OrderRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	uow billing.UnitOfWork,
	orderRepo billing.OrderRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		uow:         uow,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for audit integration
func (s *ReconciliationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// EvaluateOrder judges an order against current stock without changing
// any state. Calling it any number of times yields the same answer for
// the same stock levels. Orders that already went through acceptance
// are settled and no longer evaluable.
func (s *ReconciliationService) EvaluateOrder(ctx context.Context, orderID uuid.UUID) (*EvaluationResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsFulfilled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order has already been accepted")
	}

	products, err := s.productRepo.FindByIDs(ctx, order.ProductIDs())
	if err != nil {
		return nil, err
	}

	eval := billing.Evaluate(order, stockSnapshot(products))
	response := ToEvaluationResponse(eval)
	return &response, nil
}

// AcceptOrder runs the reconciliation transaction: re-evaluate against
// locked stock, generate the invoice with frozen prices, decrement the
// ledger and mark the order fulfilled. Everything commits together or
// not at all; a rejection carries the per-line shortfall.
func (s *ReconciliationService) AcceptOrder(ctx context.Context, orderID uuid.UUID) (*InvoiceResponse, error) {
	var (
		invoice *billing.Invoice
		order   *billing.Order
	)

	err := s.uow.Execute(ctx, func(stores billing.Stores) error {
		var err error
		order, err = stores.Orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.IsFulfilled() {
			return shared.NewDomainError("INVALID_STATE", "Order has already been accepted")
		}
		if err := order.Validate(); err != nil {
			return err
		}

		products, err := stores.Products.FindByIDsForUpdate(ctx, order.ProductIDs())
		if err != nil {
			return err
		}

		eval := billing.Evaluate(order, stockSnapshot(products))
		if !eval.Fulfillable {
			return shared.ErrInsufficientStock.WithDetails(ToEvaluationResponse(eval).Lines)
		}

		seq, err := stores.Invoices.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		invoice, err = billing.NewInvoice(billing.FormatInvoiceNumber(seq), order, priceList(products))
		if err != nil {
			return err
		}
		if err := stores.Invoices.Save(ctx, invoice); err != nil {
			return err
		}

		// Guarded decrements: the evaluation above ran under row locks,
		// so a failing guard means a writer bypassed the lock and the
		// whole transaction must roll back.
		for _, line := range order.Lines {
			if err := stores.Products.DecrementQuantity(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		if err := order.MarkFulfilled(invoice.ID); err != nil {
			return err
		}
		return stores.Orders.SaveWithLock(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order accepted",
		zap.String("order_id", order.ID.String()),
		zap.String("invoice_number", invoice.Number),
		zap.String("total", invoice.Total.String()))

	s.publishEvents(ctx, invoice.GetDomainEvents(), order.GetDomainEvents())
	invoice.ClearDomainEvents()
	order.ClearDomainEvents()

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

func (s *ReconciliationService) publishEvents(ctx context.Context, batches ...[]shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, events := range batches {
		for _, event := range events {
			_ = s.eventPublisher.Publish(ctx, event)
		}
	}
}

// stockSnapshot builds the evaluator input from loaded products.
// Products absent from the slice stay absent from the snapshot and
// therefore read as zero availability.
func stockSnapshot(products []catalog.Product) billing.StockSnapshot {
	snapshot := make(billing.StockSnapshot, len(products))
	for i := range products {
		snapshot[products[i].ID] = products[i].QuantityOnHand
	}
	return snapshot
}

// priceList freezes the current catalog name and price of each product
func priceList(products []catalog.Product) billing.PriceList {
	prices := make(billing.PriceList, len(products))
	for i := range products {
		prices[products[i].ID] = billing.PricedProduct{
			Name:      products[i].Name,
			UnitPrice: products[i].Price(),
		}
	}
	return prices
}
