package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	maxReconnectBackoff = 30 * time.Second
	prefetchCount       = 50
)

// Mailer отправляет письма получателям событий
type Mailer interface {
	Send(to, subject, body string) error
}

// Consumer фоновый обработчик очереди уведомлений.
// Каждое событие превращается в письмо через Mailer
type Consumer struct {
	url       string
	queueName string
	mailer    Mailer
	log       Logger
}

// NewConsumer создает новый экземпляр Consumer
func NewConsumer(url, queueName string, mailer Mailer, log Logger) *Consumer {
	return &Consumer{
		url:       url,
		queueName: queueName,
		mailer:    mailer,
		log:       log,
	}
}

// Run подключается к брокеру и обрабатывает события до отмены контекста.
// При обрыве соединения переподключается с экспоненциальным backoff
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("Queue consumer: failed to dial broker: %v, retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < maxReconnectBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			c.log.Warn("Queue consumer: consume loop ended: %v, reconnecting", err)
		}
		_ = conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		c.log.Warn("Queue consumer: failed to set QoS: %v", err)
	}

	if _, err := ch.QueueDeclare(c.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	msgs, err := ch.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handle(d.Body); err != nil {
				c.log.Error("Queue consumer: failed to handle message: %v", err)
				// Не возвращаем в очередь, чтобы не зациклиться на битом сообщении
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handle(body []byte) error {
	var event NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Recipient == "" {
		c.log.Warn("Queue consumer: event type=%s entity_id=%d has no recipient, skipping", event.Type, event.EntityID)
		return nil
	}

	if err := c.mailer.Send(event.Recipient, event.Subject, event.Body); err != nil {
		return fmt.Errorf("failed to send notification for event type=%s entity_id=%d: %w", event.Type, event.EntityID, err)
	}

	c.log.Info("Queue consumer: notification sent type=%s entity_id=%d", event.Type, event.EntityID)
	return nil
}
