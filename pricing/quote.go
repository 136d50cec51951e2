package pricing

import (
	"github.com/shopspring/decimal"

	"food-delivery/backend/models"
)

var (
	deliveryFee = decimal.RequireFromString("2.99")
	taxRate     = decimal.RequireFromString("0.08")
)

// Quote is the monetary breakdown snapshotted onto an order at creation.
// Total == Subtotal + DeliveryFee + Tax holds exactly.
type Quote struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// QuoteOrder prices a set of line items. The delivery fee is flat and charged
// only for delivery orders; tax is a flat 8% of the subtotal, rounded to cents.
func QuoteOrder(items []models.OrderItem, deliveryType models.DeliveryType) Quote {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	fee := decimal.Zero
	if deliveryType == models.DeliveryTypeDelivery {
		fee = deliveryFee
	}

	tax := subtotal.Mul(taxRate).Round(2)

	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
	}
}
