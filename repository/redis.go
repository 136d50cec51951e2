package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/models"
)

const (
	orderKeyPrefix    = "order:"
	paymentKeyPrefix  = "payment:"
	customerOrdersKey = "customer:%s:orders"
	vendorOrdersKey   = "vendor:%s:orders"
	orderPaymentsKey  = "order:%s:payments"
)

// RedisOrderRepository keeps orders as JSON values with per-customer and
// per-vendor sorted-set indexes scored by creation time, so listings come
// back newest first without scanning.
type RedisOrderRepository struct {
	rdb *redis.Client
}

func NewRedisOrderRepository(rdb *redis.Client) *RedisOrderRepository {
	return &RedisOrderRepository{rdb: rdb}
}

func (r *RedisOrderRepository) Create(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.ID, err)
	}

	score := float64(order.CreatedAt.UnixNano())
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, orderKeyPrefix+order.ID, data, 0)
		pipe.ZAdd(ctx, fmt.Sprintf(customerOrdersKey, order.CustomerID), &redis.Z{Score: score, Member: order.ID})
		pipe.ZAdd(ctx, fmt.Sprintf(vendorOrdersKey, order.VendorID), &redis.Z{Score: score, Member: order.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("store order %s: %w", order.ID, err)
	}
	return nil
}

func (r *RedisOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return getOrder(ctx, r.rdb, id)
}

func getOrder(ctx context.Context, c redis.Cmdable, id string) (*models.Order, error) {
	data, err := c.Get(ctx, orderKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("order %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", id, err)
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	return &order, nil
}

// Update writes the order back under an optimistic version check: the stored
// version must match the caller's copy, otherwise another writer got there
// first and the caller must reload and retry.
func (r *RedisOrderRepository) Update(ctx context.Context, order *models.Order) error {
	key := orderKeyPrefix + order.ID

	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := getOrder(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		if stored.Version != order.Version {
			return fmt.Errorf("order %s version %d is stale: %w", order.ID, order.Version, apperrors.ErrConflict)
		}

		order.Version++
		data, err := json.Marshal(order)
		if err != nil {
			return fmt.Errorf("encode order %s: %w", order.ID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return err
	}
	return nil
}

func (r *RedisOrderRepository) ListByCustomer(ctx context.Context, customerID string, f OrderFilter) ([]*models.Order, error) {
	return r.listIndexed(ctx, fmt.Sprintf(customerOrdersKey, customerID), f)
}

func (r *RedisOrderRepository) ListByVendor(ctx context.Context, vendorID string, f OrderFilter) ([]*models.Order, error) {
	return r.listIndexed(ctx, fmt.Sprintf(vendorOrdersKey, vendorID), f)
}

func (r *RedisOrderRepository) CountByVendor(ctx context.Context, vendorID string, f OrderFilter) (int64, error) {
	orders, err := r.listIndexed(ctx, fmt.Sprintf(vendorOrdersKey, vendorID), f)
	if err != nil {
		return 0, err
	}
	return int64(len(orders)), nil
}

func (r *RedisOrderRepository) listIndexed(ctx context.Context, indexKey string, f OrderFilter) ([]*models.Order, error) {
	ids, err := r.rdb.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list orders from %s: %w", indexKey, err)
	}

	orders := make([]*models.Order, 0, len(ids))
	for _, id := range ids {
		order, err := getOrder(ctx, r.rdb, id)
		if err != nil {
			// Index entries may outlive a flushed order key; skip them.
			continue
		}
		if f.Matches(order) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// RedisPaymentRepository keeps payments as JSON values with a per-order list
// of payment IDs in creation order.
type RedisPaymentRepository struct {
	rdb *redis.Client
}

func NewRedisPaymentRepository(rdb *redis.Client) *RedisPaymentRepository {
	return &RedisPaymentRepository{rdb: rdb}
}

func (r *RedisPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	data, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("encode payment %s: %w", payment.ID, err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, paymentKeyPrefix+payment.ID, data, 0)
		pipe.RPush(ctx, fmt.Sprintf(orderPaymentsKey, payment.OrderID), payment.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store payment %s: %w", payment.ID, err)
	}
	return nil
}

func (r *RedisPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	data, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("encode payment %s: %w", payment.ID, err)
	}
	if err := r.rdb.Set(ctx, paymentKeyPrefix+payment.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("store payment %s: %w", payment.ID, err)
	}
	return nil
}

func (r *RedisPaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	data, err := r.rdb.Get(ctx, paymentKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("payment %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load payment %s: %w", id, err)
	}

	var payment models.Payment
	if err := json.Unmarshal(data, &payment); err != nil {
		return nil, fmt.Errorf("decode payment %s: %w", id, err)
	}
	return &payment, nil
}

func (r *RedisPaymentRepository) ListByOrder(ctx context.Context, orderID string) ([]*models.Payment, error) {
	ids, err := r.rdb.LRange(ctx, fmt.Sprintf(orderPaymentsKey, orderID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list payments for order %s: %w", orderID, err)
	}

	payments := make([]*models.Payment, 0, len(ids))
	for _, id := range ids {
		payment, err := r.GetByID(ctx, id)
		if err != nil {
			continue
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

func (r *RedisPaymentRepository) LatestByOrder(ctx context.Context, orderID string) (*models.Payment, error) {
	id, err := r.rdb.LIndex(ctx, fmt.Sprintf(orderPaymentsKey, orderID), -1).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("no payment for order %s: %w", orderID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest payment for order %s: %w", orderID, err)
	}
	return r.GetByID(ctx, id)
}
