package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/notify"
	"food-delivery/backend/services"
)

// Handler bundles the HTTP surface over the order and payment services.
type Handler struct {
	orders       *services.OrderService
	payments     *services.PaymentService
	vendorOrders *services.VendorOrderService
	hub          *notify.Hub
	jwtSecret    string
}

func New(orders *services.OrderService, payments *services.PaymentService, vendorOrders *services.VendorOrderService, hub *notify.Hub, jwtSecret string) *Handler {
	return &Handler{
		orders:       orders,
		payments:     payments,
		vendorOrders: vendorOrders,
		hub:          hub,
		jwtSecret:    jwtSecret,
	}
}

// fail maps a service error onto an HTTP status; the global error handler
// renders it as {"error": message}.
func fail(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrInvalidStateTransition), errors.Is(err, apperrors.ErrRefundNotAllowed), errors.Is(err, apperrors.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrPaymentFailed):
		return fiber.NewError(fiber.StatusPaymentRequired, err.Error())
	case errors.Is(err, apperrors.ErrNotConfigured):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return err
}

// ErrorHandler renders every error as a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
