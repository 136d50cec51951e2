package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/auth"
	"food-delivery/backend/menu"
	"food-delivery/backend/models"
	"food-delivery/backend/pricing"
	"food-delivery/backend/repository"
)

const defaultEstimatedTime = "20-30 mins"

// OrderService drives the customer side of the order lifecycle: creation,
// retrieval, cancellation, and the vendor-driven status transitions.
type OrderService struct {
	orders   repository.OrderRepository
	catalog  menu.Catalog
	notifier Notifier
	events   EventLogger
	dispatch DeliveryDispatcher
}

func NewOrderService(orders repository.OrderRepository, catalog menu.Catalog, notifier Notifier, events EventLogger, dispatch DeliveryDispatcher) *OrderService {
	return &OrderService{
		orders:   orders,
		catalog:  catalog,
		notifier: notifier,
		events:   events,
		dispatch: dispatch,
	}
}

// CreateOrder prices the requested items against the current menu, snapshots
// the quote onto a PENDING order, persists it, and notifies the vendor. All
// items must resolve to the same vendor; delivery orders need a location.
func (s *OrderService) CreateOrder(ctx context.Context, caller auth.Principal, req *models.OrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item: %w", apperrors.ErrValidation)
	}

	deliveryType, err := models.ParseDeliveryType(req.OrderType)
	if err != nil {
		return nil, err
	}
	if deliveryType == models.DeliveryTypeDelivery && req.DeliveryLocation == nil {
		return nil, fmt.Errorf("delivery orders require a delivery location: %w", apperrors.ErrValidation)
	}

	vendorID := ""
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("item %s quantity must be positive: %w", itemReq.FoodItemID, apperrors.ErrValidation)
		}

		foodItem, err := s.catalog.FindItem(ctx, itemReq.FoodItemID)
		if err != nil {
			return nil, err
		}

		if vendorID == "" {
			vendorID = foodItem.VendorID
		} else if foodItem.VendorID != vendorID {
			return nil, fmt.Errorf("all items must belong to a single vendor: %w", apperrors.ErrValidation)
		}

		items = append(items, models.OrderItem{
			FoodItemID: foodItem.ID,
			Name:       foodItem.Name,
			Quantity:   itemReq.Quantity,
			UnitPrice:  foodItem.Price,
		})
	}

	quote := pricing.QuoteOrder(items, deliveryType)
	now := time.Now()

	order := &models.Order{
		ID:                  uuid.NewString(),
		CustomerID:          caller.AccountID,
		VendorID:            vendorID,
		Items:               items,
		DeliveryType:        deliveryType,
		DeliveryLocation:    req.DeliveryLocation,
		Status:              models.OrderStatusPending,
		SpecialInstructions: req.SpecialInstructions,
		Subtotal:            quote.Subtotal,
		DeliveryFee:         quote.DeliveryFee,
		Tax:                 quote.Tax,
		Total:               quote.Total,
		EstimatedTime:       defaultEstimatedTime,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.NotifyVendor(order.VendorID, "New order received: #"+order.ID)
	s.logEvent("order_created", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"vendor_id":   order.VendorID,
		"total":       order.Total.String(),
	})

	return order, nil
}

// GetOrder returns the order if the caller is its customer.
func (s *OrderService) GetOrder(ctx context.Context, caller auth.Principal, orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.AccountID {
		return nil, fmt.Errorf("order %s does not belong to caller: %w", orderID, apperrors.ErrUnauthorized)
	}
	return order, nil
}

// ListOrders returns all of the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, caller auth.Principal) ([]*models.Order, error) {
	return s.orders.ListByCustomer(ctx, caller.AccountID, repository.OrderFilter{})
}

// ListActiveOrders returns the caller's orders still in flight.
func (s *OrderService) ListActiveOrders(ctx context.Context, caller auth.Principal) ([]*models.Order, error) {
	return s.orders.ListByCustomer(ctx, caller.AccountID, repository.OrderFilter{Statuses: models.ActiveOrderStatuses()})
}

// ListOrderHistory returns the caller's completed and cancelled orders.
func (s *OrderService) ListOrderHistory(ctx context.Context, caller auth.Principal) ([]*models.Order, error) {
	return s.orders.ListByCustomer(ctx, caller.AccountID, repository.OrderFilter{Statuses: models.HistoryOrderStatuses()})
}

// UpdateStatus applies a vendor-driven transition. The caller must be the
// order's vendor and the move must be legal in the state machine. Delivery
// orders reaching READY are handed to the courier dispatch queue.
func (s *OrderService) UpdateStatus(ctx context.Context, caller auth.Principal, orderID, rawStatus string) (*models.Order, error) {
	newStatus, err := models.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != caller.AccountID {
		return nil, fmt.Errorf("order %s does not belong to vendor: %w", orderID, apperrors.ErrUnauthorized)
	}
	if !order.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("order %s cannot move from %s to %s: %w", orderID, order.Status, newStatus, apperrors.ErrInvalidStateTransition)
	}

	order.Status = newStatus
	order.UpdatedAt = time.Now()
	if newStatus == models.OrderStatusCompleted {
		completed := order.UpdatedAt
		order.CompletedAt = &completed
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.notifier.NotifyCustomer(order.CustomerID, order.ID, newStatus)
	s.logEvent("order_status_updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   string(newStatus),
	})

	if newStatus == models.OrderStatusReady && order.DeliveryType == models.DeliveryTypeDelivery && s.dispatch != nil {
		if err := s.dispatch.EnqueueDelivery(order); err != nil {
			log.Printf("Failed to enqueue order %s for delivery: %v", order.ID, err)
		}
	}

	return order, nil
}

// CancelOrder cancels the caller's order while it is still PENDING or
// RECEIVED; later stages are already being fulfilled.
func (s *OrderService) CancelOrder(ctx context.Context, caller auth.Principal, orderID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.CustomerID != caller.AccountID {
		return fmt.Errorf("order %s does not belong to caller: %w", orderID, apperrors.ErrUnauthorized)
	}
	if !order.Status.Cancellable() {
		return fmt.Errorf("order %s cannot be cancelled at stage %s: %w", orderID, order.Status, apperrors.ErrInvalidStateTransition)
	}

	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}

	s.notifier.NotifyVendor(order.VendorID, "Order #"+order.ID+" has been cancelled")
	s.logEvent("order_cancelled", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
	})
	return nil
}

func (s *OrderService) logEvent(event string, fields map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.LogEvent(event, fields); err != nil {
		log.Printf("Failed to log %s event: %v", event, err)
	}
}
