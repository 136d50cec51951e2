package notify

import (
	"encoding/json"
	"time"

	"github.com/Shopify/sarama"
)

// KafkaEventLog records order and payment lifecycle events on a Kafka topic
// for downstream consumers (analytics, audit).
type KafkaEventLog struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaEventLog(producer sarama.SyncProducer, topic string) *KafkaEventLog {
	return &KafkaEventLog{producer: producer, topic: topic}
}

func (l *KafkaEventLog) LogEvent(event string, fields map[string]interface{}) error {
	payload := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		payload[k] = v
	}
	payload["event"] = event
	payload["timestamp"] = time.Now().Unix()

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, _, err = l.producer.SendMessage(&sarama.ProducerMessage{
		Topic: l.topic,
		Value: sarama.StringEncoder(data),
	})
	return err
}
