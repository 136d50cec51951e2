package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "food_delivery_orders_created_total",
		Help: "The total number of orders created",
	})

	PaymentsSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "food_delivery_payments_succeeded_total",
		Help: "The total number of successful payment attempts",
	})

	PaymentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "food_delivery_payments_failed_total",
		Help: "The total number of failed payment attempts",
	})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "food_delivery_request_duration_seconds",
		Help:    "Time spent handling requests",
		Buckets: prometheus.DefBuckets,
	})
)

func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		requestDuration.Observe(time.Since(start).Seconds())
		return err
	}
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
