package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/room-booking/internal/queue"
)

// Publisher delivers booking events to consumers.
type Publisher interface {
	Publish(ctx context.Context, ev q.BookingEvent) error
}

// NopPublisher drops every event.  Used when events are disabled.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, q.BookingEvent) error { return nil }

// AMQPPublisher publishes events to a durable RabbitMQ queue.  Each call
// dials its own connection; booking mutations are rare enough that a
// long-lived channel is not worth the reconnect handling.
type AMQPPublisher struct {
	URL   string
	Queue string
	Log   *zap.Logger
}

// Publish sends ev as a persistent JSON message through the default
// exchange.  Errors are logged and returned so the caller can ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.BookingEvent) error {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(ev.Type),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}
