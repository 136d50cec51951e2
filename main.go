package main

import (
	"fmt"
	"log"
	"time"

	"github.com/Shopify/sarama"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
	"github.com/streadway/amqp"

	"food-delivery/backend/config"
	_ "food-delivery/backend/docs"
	"food-delivery/backend/handlers"
	"food-delivery/backend/menu"
	"food-delivery/backend/notify"
	"food-delivery/backend/payments"
	"food-delivery/backend/repository"
	"food-delivery/backend/server"
	"food-delivery/backend/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	rabbitmq, err := dialRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}

	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Producer.Return.Successes = true
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, kafkaConfig)
	if err != nil {
		log.Fatal("Failed to create Kafka producer:", err)
	}

	dispatcher, err := notify.NewAMQPDispatcher(rabbitmq, cfg.RabbitMQ.DispatchQueue)
	if err != nil {
		log.Fatal("Failed to set up dispatch queue:", err)
	}

	hub := notify.NewHub()
	events := notify.NewKafkaEventLog(producer, cfg.Kafka.Topic)

	orderRepo := repository.NewRedisOrderRepository(rdb)
	paymentRepo := repository.NewRedisPaymentRepository(rdb)
	catalog := menu.NewRedisCatalog(rdb)
	gateway := payments.NewProcessor(cfg.Payment.TestMode)

	orderService := services.NewOrderService(orderRepo, catalog, hub, events, dispatcher)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, gateway, hub, events)
	vendorOrderService := services.NewVendorOrderService(orderRepo)

	h := handlers.New(orderService, paymentService, vendorOrderService, hub, cfg.JWT.SecretKey)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(server.MetricsMiddleware())

	setupRoutes(app, h)

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", server.MetricsHandler())

	app.Use("/ws", h.ValidateWSToken)
	app.Get("/ws/notifications", websocket.New(h.HandleNotificationsWS))

	log.Printf("Server starting on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}

func setupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/health", healthCheck)

	v1 := app.Group("/api/v1", h.RequireAuth)

	orders := v1.Group("/orders")
	orders.Post("/", h.CreateOrder)
	orders.Get("/", h.GetOrders)
	orders.Get("/active", h.GetActiveOrders)
	orders.Get("/history", h.GetOrderHistory)
	orders.Get("/:id", h.GetOrder)
	orders.Put("/:id/status", h.UpdateOrderStatus)
	orders.Delete("/:id", h.CancelOrder)

	paymentRoutes := v1.Group("/payments")
	paymentRoutes.Post("/", h.ProcessPayment)
	paymentRoutes.Get("/:orderId", h.GetPaymentStatus)
	paymentRoutes.Post("/:orderId/refund", h.RefundPayment)

	vendor := v1.Group("/vendor/orders")
	vendor.Get("/", h.GetVendorOrders)
	vendor.Get("/active", h.GetVendorActiveOrders)
	vendor.Get("/completed", h.GetVendorCompletedOrders)
	vendor.Get("/count", h.CountVendorOrders)
}

func dialRabbitMQ(url string) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	for i := 0; i < 5; i++ {
		log.Printf("Attempting to connect to RabbitMQ (attempt %d/5)...", i+1)
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		if i < 4 {
			log.Printf("Failed to connect to RabbitMQ: %v. Retrying in 5 seconds...", err)
			time.Sleep(5 * time.Second)
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after 5 attempts: %v", err)
}

func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now(),
	})
}
