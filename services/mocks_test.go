package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/menu"
	"food-delivery/backend/models"
	"food-delivery/backend/payments"
)

type mockCatalog struct {
	items map[string]*menu.Item
}

func newMockCatalog(items ...*menu.Item) *mockCatalog {
	c := &mockCatalog{items: make(map[string]*menu.Item)}
	for _, item := range items {
		c.items[item.ID] = item
	}
	return c
}

func (c *mockCatalog) FindItem(_ context.Context, id string) (*menu.Item, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("food item %s: %w", id, apperrors.ErrNotFound)
	}
	return item, nil
}

type notifierRecorder struct {
	mu              sync.Mutex
	vendorMessages  []string
	customerUpdates []models.OrderStatus
}

func (n *notifierRecorder) NotifyVendor(_, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.vendorMessages = append(n.vendorMessages, message)
}

func (n *notifierRecorder) NotifyCustomer(_, _ string, status models.OrderStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.customerUpdates = append(n.customerUpdates, status)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (e *eventRecorder) LogEvent(event string, _ map[string]interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

type dispatchRecorder struct {
	mu     sync.Mutex
	orders []string
	err    error
}

func (d *dispatchRecorder) EnqueueDelivery(order *models.Order) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.orders = append(d.orders, order.ID)
	return nil
}

type faultyGateway struct {
	err error
}

func (g *faultyGateway) Charge(context.Context, *models.CardDetails, decimal.Decimal, string) (*payments.Outcome, error) {
	return nil, g.err
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }
