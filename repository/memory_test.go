package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/models"
)

func makeOrder(id, customerID, vendorID string, status models.OrderStatus, createdAt time.Time) *models.Order {
	return &models.Order{
		ID:         id,
		CustomerID: customerID,
		VendorID:   vendorID,
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestMemoryOrderRepository_VersionCheck(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	order := makeOrder("o1", "c1", "v1", models.OrderStatusPending, time.Now())
	require.NoError(t, repo.Create(ctx, order))

	first, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)

	first.Status = models.OrderStatusReceived
	require.NoError(t, repo.Update(ctx, first))

	// The second copy still carries the old version and must lose.
	second.Status = models.OrderStatusCancelled
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReceived, stored.Status)
}

func TestMemoryOrderRepository_Listing(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, repo.Create(ctx, makeOrder("o1", "c1", "v1", models.OrderStatusPending, base.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, makeOrder("o2", "c1", "v1", models.OrderStatusCompleted, base.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, makeOrder("o3", "c2", "v1", models.OrderStatusPending, base)))

	orders, err := repo.ListByCustomer(ctx, "c1", OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID, "newest first")

	orders, err = repo.ListByCustomer(ctx, "c1", OrderFilter{Statuses: []models.OrderStatus{models.OrderStatusPending}})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)

	from := base.Add(-30 * time.Minute)
	orders, err = repo.ListByVendor(ctx, "v1", OrderFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o3", orders[0].ID)

	count, err := repo.CountByVendor(ctx, "v1", OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMemoryPaymentRepository(t *testing.T) {
	repo := NewMemoryPaymentRepository()
	ctx := context.Background()

	_, err := repo.LatestByOrder(ctx, "o1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	first := &models.Payment{ID: "p1", OrderID: "o1", Status: models.PaymentStatusFailed}
	second := &models.Payment{ID: "p2", OrderID: "o1", Status: models.PaymentStatusCompleted}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	latest, err := repo.LatestByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "p2", latest.ID)

	history, err := repo.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "p1", history[0].ID)

	latest.Status = models.PaymentStatusRefunded
	require.NoError(t, repo.Update(ctx, latest))
	stored, err := repo.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, stored.Status)
}
