package repository

import (
	"context"
	"time"

	"food-delivery/backend/models"
)

// OrderFilter narrows order listings. A nil/empty status set means any
// status; nil From/To means no date bound.
type OrderFilter struct {
	Statuses []models.OrderStatus
	From     *time.Time
	To       *time.Time
}

func (f OrderFilter) Matches(o *models.Order) bool {
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if o.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && !o.CreatedAt.After(*f.From) {
		return false
	}
	if f.To != nil && !o.CreatedAt.Before(*f.To) {
		return false
	}
	return true
}

// OrderRepository persists orders. Update enforces the order's version
// counter; a stale version yields apperrors.ErrConflict. Listings return
// newest first.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	ListByCustomer(ctx context.Context, customerID string, f OrderFilter) ([]*models.Order, error)
	ListByVendor(ctx context.Context, vendorID string, f OrderFilter) ([]*models.Order, error)
	CountByVendor(ctx context.Context, vendorID string, f OrderFilter) (int64, error)
}

// PaymentRepository persists payment attempts. Records are never deleted;
// ListByOrder returns them in creation order and LatestByOrder returns the
// most recently created one.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*models.Payment, error)
	LatestByOrder(ctx context.Context, orderID string) (*models.Payment, error)
}
