package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"flexstock/internal/inventory"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	contentTypeJSON = "application/json"
	messageType     = "inventory.update"
)

var errNotConfirmed = errors.New("broker did not confirm message")

// RabbitPublisher writes recorded update events to a durable queue on the
// default exchange. The channel runs in confirm mode, so Publish returns only
// after the broker has taken responsibility for the message.
type RabbitPublisher struct {
	channel *amqp.Channel
	queue   string
}

func NewRabbitPublisher(conn *amqp.Connection, queue string) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	return &RabbitPublisher{channel: ch, queue: queue}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event inventory.UpdateEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	confirm, err := p.channel.PublishWithDeferredConfirmWithContext(ctx, "", p.queue, false, false, msg)
	if err != nil {
		return fmt.Errorf("publish update %d to %q: %w", event.ID, p.queue, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await confirm for update %d: %w", event.ID, err)
	}
	if !acked {
		return fmt.Errorf("update %d: %w", event.ID, errNotConfirmed)
	}
	return nil
}

// newPublishing encodes event as a persistent JSON message. The event id is
// the message id so consumers can drop redeliveries.
func newPublishing(event inventory.UpdateEvent) (amqp.Publishing, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal update %d: %w", event.ID, err)
	}

	headers := amqp.Table{
		"event_type": string(event.Type),
		"event_kind": string(event.Type.Kind()),
	}
	if event.ProductID != nil {
		headers["product_id"] = *event.ProductID
	}

	return amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    strconv.FormatInt(event.ID, 10),
		Type:         messageType,
		Timestamp:    event.Timestamp,
		AppId:        "inventory",
		Headers:      headers,
		Body:         payload,
	}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.channel.Close()
}
