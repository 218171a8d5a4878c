// Package broker publishes domain events to RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Conn owns one AMQP connection and channel.
type Conn struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// Dial connects and opens a channel.
func Dial(url string) (*Conn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("broker: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("broker: channel: %w", err)
	}
	return &Conn{Conn: conn, Ch: ch}, nil
}

func (c *Conn) Close() error {
	_ = c.Ch.Close()
	return c.Conn.Close()
}

// DeclareTopicExchange makes sure a durable topic exchange exists.
func (c *Conn) DeclareTopicExchange(name string) error {
	return c.Ch.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil)
}

// Publisher publishes persistent JSON messages to one exchange.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(ch *amqp.Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte, headers amqp.Table) error {
	return p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Headers:      headers,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}

// PublishJSON marshals v and publishes it under routingKey.
func (p *Publisher) PublishJSON(ctx context.Context, routingKey string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.Publish(ctx, routingKey, b, nil)
}
