package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/auth"
	"food-delivery/backend/models"
	"food-delivery/backend/payments"
	"food-delivery/backend/repository"
)

const defaultCurrency = "USD"

// PaymentService settles payments against orders. Every attempt is
// persisted, including failed ones, so an order carries its full settlement
// history; the latest record is the authoritative one.
type PaymentService struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	gateway  payments.Gateway
	notifier Notifier
	events   EventLogger
}

func NewPaymentService(paymentRepo repository.PaymentRepository, orders repository.OrderRepository, gateway payments.Gateway, notifier Notifier, events EventLogger) *PaymentService {
	return &PaymentService{
		payments: paymentRepo,
		orders:   orders,
		gateway:  gateway,
		notifier: notifier,
		events:   events,
	}
}

// ProcessPayment runs one settlement attempt. Cash orders are accepted
// immediately with payment deferred to handover; card and mobile-money
// charges are resolved synchronously by the gateway. A recognized decline
// comes back as a FAILED response, not an error.
func (s *PaymentService) ProcessPayment(ctx context.Context, caller auth.Principal, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.AccountID {
		return nil, fmt.Errorf("order %s does not belong to caller: %w", req.OrderID, apperrors.ErrUnauthorized)
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now()
	payment := &models.Payment{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		PayerID:   caller.AccountID,
		Amount:    req.Amount,
		Currency:  currency,
		Method:    method,
		Status:    models.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if method == models.PaymentMethodCash {
		// Cash stays PENDING until handover; the order is accepted right away.
		payment.TransactionRef = "CASH-" + uuid.NewString()
		if err := s.payments.Create(ctx, payment); err != nil {
			return nil, err
		}

		s.advanceOrder(ctx, order)
		s.logEvent("payment_recorded", payment)

		handover := "pickup"
		if order.DeliveryType == models.DeliveryTypeDelivery {
			handover = "delivery"
		}
		return models.NewPaymentResponse(payment, models.PaymentResponseSuccess, "Order placed. Pay with cash on "+handover), nil
	}

	if req.CardDetails == nil {
		return nil, fmt.Errorf("card details are required: %w", apperrors.ErrValidation)
	}

	outcome, chargeErr := s.gateway.Charge(ctx, req.CardDetails, payment.Amount, payment.Currency)
	if chargeErr != nil {
		// A gateway fault still leaves an audit record behind.
		payment.Status = models.PaymentStatusFailed
		payment.FailureReason = chargeErr.Error()
		payment.UpdatedAt = time.Now()
		if err := s.payments.Create(ctx, payment); err != nil {
			log.Printf("Failed to persist failed payment for order %s: %v", order.ID, err)
		}
		return nil, fmt.Errorf("payment processing for order %s: %w: %w", order.ID, apperrors.ErrPaymentFailed, chargeErr)
	}

	payment.Status = outcome.Status
	payment.TransactionRef = outcome.TransactionRef
	payment.GatewayRef = outcome.GatewayRef
	payment.FailureReason = outcome.FailureReason
	payment.UpdatedAt = time.Now()

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	s.logEvent("payment_recorded", payment)

	if payment.Status == models.PaymentStatusCompleted {
		s.advanceOrder(ctx, order)
		s.notifier.NotifyVendor(order.VendorID, "New paid order received: #"+order.ID)
		return models.NewPaymentResponse(payment, models.PaymentResponseSuccess, "Payment successful"), nil
	}

	return models.NewPaymentResponse(payment, models.PaymentResponseFailed, payment.FailureReason), nil
}

// GetPaymentStatus returns the latest settlement state for the caller's order.
func (s *PaymentService) GetPaymentStatus(ctx context.Context, caller auth.Principal, orderID string) (*models.PaymentResponse, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.AccountID {
		return nil, fmt.Errorf("order %s does not belong to caller: %w", orderID, apperrors.ErrUnauthorized)
	}

	payment, err := s.payments.LatestByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.PaymentStatusCompleted {
		return models.NewPaymentResponse(payment, models.PaymentResponseSuccess, "Payment completed"), nil
	}
	return models.NewPaymentResponse(payment, models.PaymentResponseFailed, payment.FailureReason), nil
}

// RefundPayment reverses the latest completed non-cash payment and cancels
// the order. Refunds cancel regardless of how far fulfilment has progressed.
func (s *PaymentService) RefundPayment(ctx context.Context, caller auth.Principal, orderID string) (*models.PaymentResponse, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.AccountID {
		return nil, fmt.Errorf("order %s does not belong to caller: %w", orderID, apperrors.ErrUnauthorized)
	}

	payment, err := s.payments.LatestByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if payment.Status != models.PaymentStatusCompleted {
		return nil, fmt.Errorf("only completed payments can be refunded: %w", apperrors.ErrRefundNotAllowed)
	}
	if payment.Method == models.PaymentMethodCash {
		return nil, fmt.Errorf("cash payments cannot be refunded through the system: %w", apperrors.ErrRefundNotAllowed)
	}

	now := time.Now()
	payment.Status = models.PaymentStatusRefunded
	payment.RefundedAt = &now
	payment.UpdatedAt = now
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = now
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logEvent("payment_refunded", payment)
	return models.NewPaymentResponse(payment, models.PaymentResponseSuccess, "Payment refunded successfully"), nil
}

// advanceOrder moves a freshly settled order to RECEIVED. Orders already past
// PENDING (a retry after a successful attempt) are left untouched.
func (s *PaymentService) advanceOrder(ctx context.Context, order *models.Order) {
	if !order.Status.CanTransitionTo(models.OrderStatusReceived) {
		return
	}
	order.Status = models.OrderStatusReceived
	order.UpdatedAt = time.Now()
	if err := s.orders.Update(ctx, order); err != nil {
		log.Printf("Failed to advance order %s after payment: %v", order.ID, err)
	}
}

func (s *PaymentService) logEvent(event string, payment *models.Payment) {
	if s.events == nil {
		return
	}
	err := s.events.LogEvent(event, map[string]interface{}{
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
		"method":     string(payment.Method),
		"status":     string(payment.Status),
		"amount":     payment.Amount.String(),
	})
	if err != nil {
		log.Printf("Failed to log %s event: %v", event, err)
	}
}
