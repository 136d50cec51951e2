package notify

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"food-delivery/backend/models"
)

// AMQPDispatcher hands delivery orders to the courier-dispatch service over
// a durable RabbitMQ queue once the vendor marks them ready.
type AMQPDispatcher struct {
	ch    *amqp.Channel
	queue string
}

func NewAMQPDispatcher(conn *amqp.Connection, queue string) (*AMQPDispatcher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &AMQPDispatcher{ch: ch, queue: queue}, nil
}

func (d *AMQPDispatcher) EnqueueDelivery(order *models.Order) error {
	msg := map[string]interface{}{
		"order_id":  order.ID,
		"vendor_id": order.VendorID,
	}
	if order.DeliveryLocation != nil {
		msg["lat"] = order.DeliveryLocation.Latitude
		msg["lon"] = order.DeliveryLocation.Longitude
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return d.ch.Publish("", d.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (d *AMQPDispatcher) Close() error {
	return d.ch.Close()
}
