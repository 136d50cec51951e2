package services

import "food-delivery/backend/models"

// Notifier pushes order events to account channels. Implementations are
// fire-and-forget; the services never fail a mutation over a notification.
type Notifier interface {
	NotifyVendor(vendorID, message string)
	NotifyCustomer(customerID, orderID string, status models.OrderStatus)
}

// EventLogger records lifecycle events for downstream consumers.
type EventLogger interface {
	LogEvent(event string, fields map[string]interface{}) error
}

// DeliveryDispatcher hands ready delivery orders to the courier side.
type DeliveryDispatcher interface {
	EnqueueDelivery(order *models.Order) error
}
