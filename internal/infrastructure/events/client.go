// Package events publishes transaction change events over AMQP so
// downstream consumers (sync jobs, audit trails) can react to writes.
// Publishing is optional: when no broker is configured the service
// simply runs without a publisher.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Routing keys for transaction change events.
const (
	RouteCreated = "transaction.created"
	RouteUpdated = "transaction.updated"
	RouteDeleted = "transaction.deleted"
)

const publishTimeout = 5 * time.Second

// Client is an AMQP publisher bound to a topic exchange.
type Client struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewClient dials the broker and declares the exchange.
func NewClient(url, exchange string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Client{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// TransactionCreated announces a newly stored transaction.
func (c *Client) TransactionCreated(ctx context.Context, id string) error {
	return c.publish(ctx, RouteCreated, id)
}

// TransactionUpdated announces a replaced or partially updated transaction.
func (c *Client) TransactionUpdated(ctx context.Context, id string) error {
	return c.publish(ctx, RouteUpdated, id)
}

// TransactionDeleted announces a removed transaction.
func (c *Client) TransactionDeleted(ctx context.Context, id string) error {
	return c.publish(ctx, RouteDeleted, id)
}

func (c *Client) publish(ctx context.Context, route, id string) error {
	msg := NewChangeMessage(route, id)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchange, // exchange
		route,      // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Close releases the channel and the connection.
func (c *Client) Close() error {
	var firstErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
