package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ValidateWSToken guards the notification socket. WebSocket clients cannot
// set headers from the browser, so the token travels as a query parameter
// and must match the account the client claims to be.
func (h *Handler) ValidateWSToken(c *fiber.Ctx) error {
	token := c.Query("token")
	accountID := c.Query("account_id")

	if token == "" || accountID == "" {
		return fiber.ErrUnauthorized
	}

	principal, err := h.parseToken(token)
	if err != nil || principal.AccountID != accountID {
		return fiber.ErrUnauthorized
	}

	return c.Next()
}

// HandleNotificationsWS keeps an account's notification channel open. The
// server only pushes; inbound frames are drained until the peer goes away.
func (h *Handler) HandleNotificationsWS(c *websocket.Conn) {
	accountID := c.Query("account_id")
	h.hub.Register(accountID, c)
	defer func() {
		h.hub.Unregister(accountID)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
