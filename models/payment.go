package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"food-delivery/backend/apperrors"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodCard        PaymentMethod = "CARD"
	PaymentMethodCash        PaymentMethod = "CASH"
	PaymentMethodMobileMoney PaymentMethod = "MOBILE_MONEY"
)

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(raw))) {
	case PaymentMethodCard:
		return PaymentMethodCard, nil
	case PaymentMethodCash:
		return PaymentMethodCash, nil
	case PaymentMethodMobileMoney:
		return PaymentMethodMobileMoney, nil
	}
	return "", fmt.Errorf("unknown payment method %q: %w", raw, apperrors.ErrValidation)
}

// Payment is one settlement attempt against an order. Records are append-only:
// failed attempts stay behind as an audit trail and the most recently created
// record is authoritative for the order's settlement state.
type Payment struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"order_id"`
	PayerID        string          `json:"payer_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Method         PaymentMethod   `json:"method"`
	Status         PaymentStatus   `json:"status"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	GatewayRef     string          `json:"gateway_ref,omitempty"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	RefundedAt     *time.Time      `json:"refunded_at,omitempty"`
}
