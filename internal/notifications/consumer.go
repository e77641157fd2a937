package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"flexstock/internal/inventory"

	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
)

const consumerTag = "notifications-service"

// Metrics counts consumed updates. Received is labelled by "type" (unknown
// tags collapse into one bucket) and "outcome".
type Metrics struct {
	Received   *prometheus.CounterVec
	OutOfStock prometheus.Counter
}

type Consumer struct {
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
	metrics Metrics
}

func NewConsumer(conn *amqp.Connection, queue string, prefetch int, logger *slog.Logger, metrics Metrics) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}

	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("set prefetch %d: %w", prefetch, err)
	}

	return &Consumer{
		channel: ch,
		queue:   queue,
		logger:  logger,
		metrics: metrics,
	}, nil
}

func (c *Consumer) Listen(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		c.queue,
		consumerTag,
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume queue %q: %w", c.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			if err := handleMessage(c.logger, c.metrics, msg.Body); err != nil {
				c.logger.Error("handle message failed", "error", err)
				// Malformed payloads will never decode; drop them.
				_ = msg.Nack(false, false)
				continue
			}

			_ = msg.Ack(false)
		}
	}
}

func handleMessage(logger *slog.Logger, metrics Metrics, body []byte) error {
	var event inventory.UpdateEvent
	if err := json.Unmarshal(body, &event); err != nil {
		metrics.Received.WithLabelValues(string(inventory.EventUnknown), "malformed").Inc()
		return fmt.Errorf("unmarshal event: %w", err)
	}
	metrics.Received.WithLabelValues(string(event.Type.Kind()), "ok").Inc()

	logger.Info("inventory update",
		"update_id", event.ID,
		"type", event.Type,
		"known_type", event.Type.Known(),
		"product_id", event.ProductID,
		"product_name", event.ProductName,
		"old_quantity", event.OldQuantity,
		"new_quantity", event.NewQuantity,
		"user", event.User,
		"timestamp", event.Timestamp,
	)

	if event.Type.AffectsStock() && event.Type != inventory.EventDelete &&
		event.NewQuantity != nil && *event.NewQuantity == 0 {
		metrics.OutOfStock.Inc()
		logger.Warn("product out of stock",
			"product_id", event.ProductID,
			"product_name", event.ProductName,
		)
	}

	return nil
}

func (c *Consumer) Close() error {
	return c.channel.Close()
}
