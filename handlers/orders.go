package handlers

import (
	"github.com/gofiber/fiber/v2"

	"food-delivery/backend/models"
	"food-delivery/backend/server"
)

// @Summary Create an order
// @Tags Orders
// @Accept json
// @Produce json
// @Success 201 {object} models.Order
// @Router /orders [post]
func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	var req models.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.CreateOrder(c.Context(), principalFromCtx(c), &req)
	if err != nil {
		return fail(err)
	}

	server.OrdersCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *Handler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.Context(), principalFromCtx(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(orders)
}

func (h *Handler) GetActiveOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListActiveOrders(c.Context(), principalFromCtx(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(orders)
}

func (h *Handler) GetOrderHistory(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrderHistory(c.Context(), principalFromCtx(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(orders)
}

func (h *Handler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orders.GetOrder(c.Context(), principalFromCtx(c), c.Params("id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(order)
}

// @Summary Update order status (vendor)
// @Tags Orders
// @Produce json
// @Param status query string true "new status"
// @Router /orders/{id}/status [put]
func (h *Handler) UpdateOrderStatus(c *fiber.Ctx) error {
	order, err := h.orders.UpdateStatus(c.Context(), principalFromCtx(c), c.Params("id"), c.Query("status"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(order)
}

func (h *Handler) CancelOrder(c *fiber.Ctx) error {
	if err := h.orders.CancelOrder(c.Context(), principalFromCtx(c), c.Params("id")); err != nil {
		return fail(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
