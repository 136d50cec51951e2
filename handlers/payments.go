package handlers

import (
	"github.com/gofiber/fiber/v2"

	"food-delivery/backend/models"
	"food-delivery/backend/server"
)

// @Summary Process a payment for an order
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} models.PaymentResponse
// @Router /payments [post]
func (h *Handler) ProcessPayment(c *fiber.Ctx) error {
	var req models.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.payments.ProcessPayment(c.Context(), principalFromCtx(c), &req)
	if err != nil {
		server.PaymentsFailed.Inc()
		return fail(err)
	}

	if resp.PaymentStatus == models.PaymentResponseSuccess {
		server.PaymentsSucceeded.Inc()
	} else {
		server.PaymentsFailed.Inc()
	}
	return c.JSON(resp)
}

func (h *Handler) GetPaymentStatus(c *fiber.Ctx) error {
	resp, err := h.payments.GetPaymentStatus(c.Context(), principalFromCtx(c), c.Params("orderId"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(resp)
}

func (h *Handler) RefundPayment(c *fiber.Ctx) error {
	resp, err := h.payments.RefundPayment(c.Context(), principalFromCtx(c), c.Params("orderId"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(resp)
}
