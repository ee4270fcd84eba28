package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue receives SMS jobs when no queue name is configured.
const DefaultQueue = "sms.outbound"

// Channel is the part of *amqp.Channel the queue sender needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QueueSender publishes each message as a persistent JSON job.
type QueueSender struct {
	ch    Channel
	queue string
	from  string
	now   func() time.Time
}

func NewQueueSender(ch Channel, queue, from string) (*QueueSender, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare sms queue: %w", err)
	}
	return &QueueSender{ch: ch, queue: queue, from: from, now: time.Now}, nil
}

func (s *QueueSender) Send(ctx context.Context, msg *Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if msg.From == "" {
		msg.From = s.from
	}
	msg.SentAt = s.now()

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal sms: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = s.ch.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
		Timestamp:    msg.SentAt,
	})
	if err != nil {
		return fmt.Errorf("publish sms: %w", err)
	}
	return nil
}

// Dial opens a connection and channel for QueueSender.
func Dial(uri string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	return conn, ch, nil
}
