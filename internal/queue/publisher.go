package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eventhub-backend/pkg/logger"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher delivers domain events. Publishing happens after the database
// commit, so failures are logged by callers and never undo the operation.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close() error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                        { return nil }

// AMQPPublisher publishes persistent JSON messages to a durable queue on the
// default exchange. The connection is opened lazily and reopened after a
// failure.
type AMQPPublisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue}
}

// NewPublisher returns an AMQP publisher, or a no-op one when url is empty.
func NewPublisher(url, queue string) Publisher {
	if url == "" {
		logger.Log.Info("AMQP_URL not set, domain events are disabled")
		return NoopPublisher{}
	}
	return NewAMQPPublisher(url, queue)
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq dial: %w", err)
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	p.ch = ch
	return ch, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	now := time.Now().UTC()
	body, err := sonic.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: now.Format(time.RFC3339),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", eventType, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Type:         eventType,
		Body:         body,
	}); err != nil {
		_ = ch.Close()
		p.ch = nil
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	logger.WithFields(logrus.Fields{"type": eventType, "queue": p.queue}).Debug("domain event published")
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}
