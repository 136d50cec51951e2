package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"food-delivery/backend/apperrors"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusReceived       OrderStatus = "RECEIVED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReady          OrderStatus = "READY"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "PICKUP"
	DeliveryTypeDelivery DeliveryType = "DELIVERY"
)

// orderTransitions is the explicit state machine for an order. Pickup orders
// complete straight from READY; delivery orders pass through OUT_FOR_DELIVERY.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusReceived, OrderStatusCancelled},
	OrderStatusReceived:       {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady},
	OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusCompleted},
	OrderStatusOutForDelivery: {OrderStatusCompleted},
	OrderStatusCompleted:      {},
	OrderStatusCancelled:      {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether a customer may still cancel the order.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusReceived
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := orderTransitions[s]; !ok {
		return "", fmt.Errorf("unknown order status %q: %w", raw, apperrors.ErrValidation)
	}
	return s, nil
}

func ParseDeliveryType(raw string) (DeliveryType, error) {
	switch DeliveryType(strings.ToUpper(strings.TrimSpace(raw))) {
	case DeliveryTypePickup:
		return DeliveryTypePickup, nil
	case DeliveryTypeDelivery:
		return DeliveryTypeDelivery, nil
	}
	return "", fmt.Errorf("unknown delivery type %q: %w", raw, apperrors.ErrValidation)
}

// ActiveOrderStatuses are the states of an order that is still in flight.
func ActiveOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusReceived,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusOutForDelivery,
	}
}

// HistoryOrderStatuses are the terminal states shown in order history.
func HistoryOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusCompleted, OrderStatusCancelled}
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OrderItem struct {
	FoodItemID string          `json:"food_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type Order struct {
	ID                  string          `json:"id"`
	CustomerID          string          `json:"customer_id"`
	VendorID            string          `json:"vendor_id"`
	Items               []OrderItem     `json:"items"`
	DeliveryType        DeliveryType    `json:"delivery_type"`
	DeliveryLocation    *Location       `json:"delivery_location,omitempty"`
	Status              OrderStatus     `json:"status"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	DeliveryFee         decimal.Decimal `json:"delivery_fee"`
	Tax                 decimal.Decimal `json:"tax"`
	Total               decimal.Decimal `json:"total"`
	EstimatedTime       string          `json:"estimated_time,omitempty"`
	Version             int64           `json:"version"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	CompletedAt         *time.Time      `json:"completed_at,omitempty"`
}
