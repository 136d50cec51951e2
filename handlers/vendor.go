package handlers

import "github.com/gofiber/fiber/v2"

func (h *Handler) GetVendorActiveOrders(c *fiber.Ctx) error {
	orders, err := h.vendorOrders.ActiveOrders(c.Context(), principalFromCtx(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(orders)
}

func (h *Handler) GetVendorCompletedOrders(c *fiber.Ctx) error {
	orders, err := h.vendorOrders.CompletedOrders(c.Context(), principalFromCtx(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(orders)
}

func (h *Handler) GetVendorOrders(c *fiber.Ctx) error {
	orders, err := h.vendorOrders.Orders(c.Context(), principalFromCtx(c),
		c.Query("status"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(orders)
}

func (h *Handler) CountVendorOrders(c *fiber.Ctx) error {
	count, err := h.vendorOrders.CountOrders(c.Context(), principalFromCtx(c),
		c.Query("status"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(fiber.Map{"count": count})
}
