package models

import "github.com/shopspring/decimal"

type OrderItemRequest struct {
	FoodItemID string `json:"food_item_id"`
	Quantity   int    `json:"quantity"`
}

type OrderRequest struct {
	OrderType           string             `json:"order_type"` // PICKUP or DELIVERY
	DeliveryLocation    *Location          `json:"delivery_location,omitempty"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	Items               []OrderItemRequest `json:"items"`
}

type CardDetails struct {
	CardNumber     string `json:"card_number"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CVC            string `json:"cvc"`
	CardHolderName string `json:"card_holder_name"`
}

type PaymentRequest struct {
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
	PaymentMethod string          `json:"payment_method"` // CARD, CASH, MOBILE_MONEY
	CardDetails   *CardDetails    `json:"card_details,omitempty"`
}

// PaymentResponse pairs the persisted payment with a human-readable
// SUCCESS/FAILED status and message.
type PaymentResponse struct {
	Payment        *Payment `json:"payment"`
	PaymentStatus  string   `json:"payment_status"`
	PaymentMessage string   `json:"payment_message"`
}

const (
	PaymentResponseSuccess = "SUCCESS"
	PaymentResponseFailed  = "FAILED"
)

func NewPaymentResponse(p *Payment, status, message string) *PaymentResponse {
	return &PaymentResponse{Payment: p, PaymentStatus: status, PaymentMessage: message}
}
