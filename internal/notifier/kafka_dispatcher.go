package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
)

// outboundMessage is the wire payload the downstream delivery worker
// consumes. The worker owns the actual e-mail/SMS sending.
type outboundMessage struct {
	NotificationID string    `json:"notification_id"`
	Event          string    `json:"event"`
	Channel        string    `json:"channel"`
	Recipient      string    `json:"recipient"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	Timestamp      time.Time `json:"timestamp"`
}

// KafkaDispatcher publishes rendered notifications to a Kafka topic.
type KafkaDispatcher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// Ensure implementation matches interface
var _ portssvc.NotificationDispatcher = (*KafkaDispatcher)(nil)

// NewKafkaDispatcher creates a dispatcher writing to the given brokers and topic.
func NewKafkaDispatcher(brokers []string, topic string, logger *slog.Logger) *KafkaDispatcher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
		BatchTimeout: 10 * time.Millisecond,
	}

	logger.Info("Kafka notification dispatcher initialized", slog.String("topic", topic))

	return &KafkaDispatcher{
		writer: writer,
		logger: logger,
	}
}

// Dispatch publishes one rendered notification. Keyed by recipient so
// messages to the same person stay ordered.
func (d *KafkaDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	payload := outboundMessage{
		NotificationID: n.NotificationID,
		Event:          string(n.Event),
		Channel:        string(n.Channel),
		Recipient:      n.Recipient,
		Subject:        n.Subject,
		Body:           n.Body,
		Timestamp:      time.Now().UTC(),
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification %s: %w", n.NotificationID, err)
	}

	msg := kafka.Message{
		Key:   []byte(n.Recipient),
		Value: value,
		Time:  time.Now(),
	}

	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish notification %s: %w", n.NotificationID, err)
	}

	d.logger.Debug("Notification published",
		slog.String("notification_id", n.NotificationID),
		slog.String("event", string(n.Event)),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (d *KafkaDispatcher) Close() error {
	if d.writer != nil {
		d.logger.Info("Closing Kafka notification dispatcher")
		return d.writer.Close()
	}
	return nil
}
