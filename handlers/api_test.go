package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/backend/apperrors"
	"food-delivery/backend/menu"
	"food-delivery/backend/models"
	"food-delivery/backend/notify"
	"food-delivery/backend/payments"
	"food-delivery/backend/repository"
	"food-delivery/backend/services"
)

const testSecret = "test-secret"

type stubCatalog map[string]*menu.Item

func (c stubCatalog) FindItem(_ context.Context, id string) (*menu.Item, error) {
	item, ok := c[id]
	if !ok {
		return nil, fmt.Errorf("food item %s: %w", id, apperrors.ErrNotFound)
	}
	return item, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	catalog := stubCatalog{
		"burger": {ID: "burger", VendorID: "vendor-1", Name: "Burger", Price: decimal.RequireFromString("10.00")},
		"fries":  {ID: "fries", VendorID: "vendor-1", Name: "Fries", Price: decimal.RequireFromString("5.00")},
	}

	orderRepo := repository.NewMemoryOrderRepository()
	paymentRepo := repository.NewMemoryPaymentRepository()
	hub := notify.NewHub()

	orderSvc := services.NewOrderService(orderRepo, catalog, hub, nil, nil)
	paymentSvc := services.NewPaymentService(paymentRepo, orderRepo, payments.NewProcessor(true), hub, nil)
	vendorSvc := services.NewVendorOrderService(orderRepo)

	h := New(orderSvc, paymentSvc, vendorSvc, hub, testSecret)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	v1 := app.Group("/api/v1", h.RequireAuth)
	orders := v1.Group("/orders")
	orders.Post("/", h.CreateOrder)
	orders.Get("/active", h.GetActiveOrders)
	orders.Get("/history", h.GetOrderHistory)
	orders.Get("/:id", h.GetOrder)
	orders.Put("/:id/status", h.UpdateOrderStatus)
	orders.Delete("/:id", h.CancelOrder)

	paymentRoutes := v1.Group("/payments")
	paymentRoutes.Post("/", h.ProcessPayment)
	paymentRoutes.Get("/:orderId", h.GetPaymentStatus)
	paymentRoutes.Post("/:orderId/refund", h.RefundPayment)

	return app
}

func signToken(t *testing.T, accountID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"role":       role,
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeOrder(t *testing.T, resp *http.Response) models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
	return order
}

func orderBody() map[string]interface{} {
	return map[string]interface{}{
		"order_type": "DELIVERY",
		"delivery_location": map[string]float64{
			"latitude":  51.5,
			"longitude": -0.12,
		},
		"items": []map[string]interface{}{
			{"food_item_id": "burger", "quantity": 2},
			{"food_item_id": "fries", "quantity": 1},
		},
	}
}

func TestAPI_RequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders/", "", orderBody())
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders/", "garbage-token", orderBody())
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_OrderLifecycle(t *testing.T) {
	app := newTestApp(t)
	customerToken := signToken(t, "cust-1", "customer")
	vendorToken := signToken(t, "vendor-1", "vendor")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders/", customerToken, orderBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decodeOrder(t, resp)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "29.99", order.Total.String())

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, customerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Another customer cannot see it.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, signToken(t, "cust-2", "customer"), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Vendor accepts, then the customer can no longer skip the queue.
	resp = doJSON(t, app, http.MethodPut, "/api/v1/orders/"+order.ID+"/status?status=RECEIVED", vendorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/v1/orders/"+order.ID+"/status?status=COMPLETED", vendorToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/active", customerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var active []models.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&active))
	assert.Len(t, active, 1)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/orders/"+order.ID, customerToken, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestAPI_PaymentFlow(t *testing.T) {
	app := newTestApp(t)
	customerToken := signToken(t, "cust-1", "customer")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders/", customerToken, orderBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decodeOrder(t, resp)

	// No payments yet.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/payments/"+order.ID, customerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	payment := map[string]interface{}{
		"order_id":       order.ID,
		"amount":         "29.99",
		"payment_method": "CARD",
		"card_details": map[string]string{
			"card_number":      "4242424242424242",
			"expiry_month":     "12",
			"expiry_year":      "2030",
			"cvc":              "123",
			"card_holder_name": "Test Customer",
		},
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/payments/", customerToken, payment)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var payResp models.PaymentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payResp))
	assert.Equal(t, models.PaymentResponseSuccess, payResp.PaymentStatus)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, customerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.OrderStatusReceived, decodeOrder(t, resp).Status)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/payments/"+order.ID+"/refund", customerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, customerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.OrderStatusCancelled, decodeOrder(t, resp).Status)
}
