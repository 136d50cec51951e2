package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/models"
)

// MemoryOrderRepository is a mutex-guarded in-memory implementation used in
// tests and for running the service without a Redis instance.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]models.Order)}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = *order
	return nil
}

func (r *MemoryOrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, apperrors.ErrNotFound)
	}
	return &order, nil
}

func (r *MemoryOrderRepository) Update(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok {
		return fmt.Errorf("order %s: %w", order.ID, apperrors.ErrNotFound)
	}
	if stored.Version != order.Version {
		return fmt.Errorf("order %s version %d is stale: %w", order.ID, order.Version, apperrors.ErrConflict)
	}
	order.Version++
	r.orders[order.ID] = *order
	return nil
}

func (r *MemoryOrderRepository) ListByCustomer(_ context.Context, customerID string, f OrderFilter) ([]*models.Order, error) {
	return r.list(func(o *models.Order) bool { return o.CustomerID == customerID && f.Matches(o) }), nil
}

func (r *MemoryOrderRepository) ListByVendor(_ context.Context, vendorID string, f OrderFilter) ([]*models.Order, error) {
	return r.list(func(o *models.Order) bool { return o.VendorID == vendorID && f.Matches(o) }), nil
}

func (r *MemoryOrderRepository) CountByVendor(ctx context.Context, vendorID string, f OrderFilter) (int64, error) {
	orders, _ := r.ListByVendor(ctx, vendorID, f)
	return int64(len(orders)), nil
}

func (r *MemoryOrderRepository) list(keep func(*models.Order) bool) []*models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Order
	for id := range r.orders {
		order := r.orders[id]
		if keep(&order) {
			out = append(out, &order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// MemoryPaymentRepository is the in-memory counterpart for payments.
type MemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]models.Payment
	byOrder  map[string][]string
}

func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		payments: make(map[string]models.Payment),
		byOrder:  make(map[string][]string),
	}
}

func (r *MemoryPaymentRepository) Create(_ context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.ID] = *payment
	r.byOrder[payment.OrderID] = append(r.byOrder[payment.OrderID], payment.ID)
	return nil
}

func (r *MemoryPaymentRepository) Update(_ context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[payment.ID]; !ok {
		return fmt.Errorf("payment %s: %w", payment.ID, apperrors.ErrNotFound)
	}
	r.payments[payment.ID] = *payment
	return nil
}

func (r *MemoryPaymentRepository) GetByID(_ context.Context, id string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", id, apperrors.ErrNotFound)
	}
	return &payment, nil
}

func (r *MemoryPaymentRepository) ListByOrder(_ context.Context, orderID string) ([]*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOrder[orderID]
	out := make([]*models.Payment, 0, len(ids))
	for _, id := range ids {
		payment := r.payments[id]
		out = append(out, &payment)
	}
	return out, nil
}

func (r *MemoryPaymentRepository) LatestByOrder(_ context.Context, orderID string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOrder[orderID]
	if len(ids) == 0 {
		return nil, fmt.Errorf("no payment for order %s: %w", orderID, apperrors.ErrNotFound)
	}
	payment := r.payments[ids[len(ids)-1]]
	return &payment, nil
}
