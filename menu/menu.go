package menu

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"

	"food-delivery/backend/apperrors"
)

// Item is the catalog view the order workflow needs: current price and the
// vendor that owns the item. Prices are snapshotted onto orders at creation.
type Item struct {
	ID       string          `json:"id"`
	VendorID string          `json:"vendor_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
}

// Catalog is the menu lookup collaborator consumed by the order service.
type Catalog interface {
	FindItem(ctx context.Context, id string) (*Item, error)
}

const itemKeyPrefix = "menu:item:"

// RedisCatalog stores menu items as JSON values in Redis. The menu CRUD
// surface itself lives outside this service; PutItem exists for seeding and
// for the admin glue that maintains the catalog.
type RedisCatalog struct {
	rdb *redis.Client
}

func NewRedisCatalog(rdb *redis.Client) *RedisCatalog {
	return &RedisCatalog{rdb: rdb}
}

func (c *RedisCatalog) FindItem(ctx context.Context, id string) (*Item, error) {
	data, err := c.rdb.Get(ctx, itemKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("food item %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load food item %s: %w", id, err)
	}

	var item Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("decode food item %s: %w", id, err)
	}
	return &item, nil
}

func (c *RedisCatalog) PutItem(ctx context.Context, item *Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode food item %s: %w", item.ID, err)
	}
	return c.rdb.Set(ctx, itemKeyPrefix+item.ID, data, 0).Err()
}
