package notify

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"food-delivery/backend/models"
)

// Hub pushes order events to connected accounts over WebSocket. Delivery is
// fire-and-forget: an offline account or a failed write is logged and
// dropped, never surfaced to the mutation that triggered it.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*websocket.Conn)}
}

func (h *Hub) Register(accountID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[accountID] = conn
}

func (h *Hub) Unregister(accountID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, accountID)
}

// NotifyVendor sends a free-text order notification to a vendor account.
func (h *Hub) NotifyVendor(vendorID, message string) {
	h.send(vendorID, map[string]interface{}{
		"type":    "order_notification",
		"message": message,
	})
}

// NotifyCustomer sends an order status update to a customer account.
func (h *Hub) NotifyCustomer(customerID, orderID string, status models.OrderStatus) {
	h.send(customerID, map[string]interface{}{
		"type":     "order_status_update",
		"order_id": orderID,
		"status":   status,
	})
}

func (h *Hub) send(accountID string, payload map[string]interface{}) {
	h.mu.RLock()
	conn, ok := h.clients[accountID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	if err := conn.WriteJSON(payload); err != nil {
		log.Printf("Failed to push notification to %s: %v", accountID, err)
	}
}
