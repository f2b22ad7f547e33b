// Package queue публикация и обработка событий уведомлений через RabbitMQ.
// Публикация best-effort: ошибки логируются и возвращаются, но вызывающая
// сторона не прерывает основной сценарий
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события уведомлений в очередь.
// При выключенном брокере события отправляются напрямую через fallback
type Publisher struct {
	enabled   bool
	url       string
	queueName string
	fallback  Mailer
	log       Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher создает новый экземпляр Publisher.
// Соединение устанавливается лениво при первой публикации.
// fallback используется как прямой канал доставки при enabled=false
func NewPublisher(enabled bool, url, queueName string, fallback Mailer, log Logger) *Publisher {
	return &Publisher{
		enabled:   enabled,
		url:       url,
		queueName: queueName,
		fallback:  fallback,
		log:       log,
	}
}

// Publish отправляет событие в очередь уведомлений.
// Сообщения персистентные, очередь durable
func (p *Publisher) Publish(ctx context.Context, event NotificationEvent) error {
	if !p.enabled {
		return p.sendDirect(event)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrPublish, err)
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, pub); err != nil {
		p.log.Warn("Queue: publish failed, reconnecting on next attempt: %v", err)
		p.reset()
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Queue: published event type=%s entity_id=%d", event.Type, event.EntityID)
	return nil
}

// sendDirect доставляет событие письмом в обход брокера
func (p *Publisher) sendDirect(event NotificationEvent) error {
	if p.fallback == nil {
		return ErrDisabled
	}
	if event.Recipient == "" {
		p.log.Warn("Queue: event type=%s entity_id=%d has no recipient, skipping", event.Type, event.EntityID)
		return nil
	}

	if err := p.fallback.Send(event.Recipient, event.Subject, event.Body); err != nil {
		return fmt.Errorf("%w: direct send type=%s entity_id=%d: %v", ErrPublish, event.Type, event.EntityID, err)
	}

	p.log.Info("Queue: broker disabled, notification sent directly type=%s entity_id=%d", event.Type, event.EntityID)
	return nil
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() {
	p.reset()
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to dial broker: %v", ErrPublish, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: failed to open channel: %v", ErrPublish, err)
	}

	if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: failed to declare queue: %v", ErrPublish, err)
	}

	p.conn = conn
	p.ch = ch
	return p.ch, nil
}

func (p *Publisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
