package services

import (
	"context"
	"fmt"
	"time"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/auth"
	"food-delivery/backend/models"
	"food-delivery/backend/repository"
)

// VendorOrderService is the vendor-facing view over orders: the incoming
// queue, filtered listings, and counts for the vendor dashboard.
type VendorOrderService struct {
	orders repository.OrderRepository
}

func NewVendorOrderService(orders repository.OrderRepository) *VendorOrderService {
	return &VendorOrderService{orders: orders}
}

// ActiveOrders lists the vendor's orders that are not yet completed or
// cancelled, newest first.
func (s *VendorOrderService) ActiveOrders(ctx context.Context, caller auth.Principal) ([]*models.Order, error) {
	return s.orders.ListByVendor(ctx, caller.AccountID, repository.OrderFilter{Statuses: models.ActiveOrderStatuses()})
}

// CompletedOrders lists the vendor's fulfilled orders.
func (s *VendorOrderService) CompletedOrders(ctx context.Context, caller auth.Principal) ([]*models.Order, error) {
	return s.orders.ListByVendor(ctx, caller.AccountID, repository.OrderFilter{Statuses: []models.OrderStatus{models.OrderStatusCompleted}})
}

// Orders lists the vendor's orders with optional status and date-range
// filters. Dates are RFC 3339 strings as received from the query layer.
func (s *VendorOrderService) Orders(ctx context.Context, caller auth.Principal, status, startDate, endDate string) ([]*models.Order, error) {
	filter, err := buildVendorFilter(status, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByVendor(ctx, caller.AccountID, filter)
}

// CountOrders counts the vendor's orders under the same filters as Orders.
func (s *VendorOrderService) CountOrders(ctx context.Context, caller auth.Principal, status, startDate, endDate string) (int64, error) {
	filter, err := buildVendorFilter(status, startDate, endDate)
	if err != nil {
		return 0, err
	}
	return s.orders.CountByVendor(ctx, caller.AccountID, filter)
}

func buildVendorFilter(status, startDate, endDate string) (repository.OrderFilter, error) {
	var filter repository.OrderFilter

	if status != "" {
		parsed, err := models.ParseOrderStatus(status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []models.OrderStatus{parsed}
	}

	if startDate != "" {
		from, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return filter, fmt.Errorf("bad start date %q: %w", startDate, apperrors.ErrValidation)
		}
		filter.From = &from
	}
	if endDate != "" {
		to, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			return filter, fmt.Errorf("bad end date %q: %w", endDate, apperrors.ErrValidation)
		}
		filter.To = &to
	}

	return filter, nil
}
