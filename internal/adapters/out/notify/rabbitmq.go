// Package notify delivers customer and operator notifications through
// RabbitMQ job queues consumed by the messaging workers.
package notify

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QueuePublisher publishes a message body to a named queue. Channel adapters
// depend on this interface so tests can substitute a fake.
type QueuePublisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// RabbitmqClient holds a connection and channel to the broker.
type RabbitmqClient struct {
	conn *amqp.Connection
	chn  *amqp.Channel
}

// NewRabbitmqClient dials the broker and opens a channel.
func NewRabbitmqClient(url string) (*RabbitmqClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	chn, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	return &RabbitmqClient{conn: conn, chn: chn}, nil
}

// DeclareQueue declares a durable queue, creating it if it does not exist.
func (c *RabbitmqClient) DeclareQueue(name string) error {
	_, err := c.chn.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

// Publish sends a persistent JSON message to the queue.
func (c *RabbitmqClient) Publish(ctx context.Context, queue string, body []byte) error {
	err := c.chn.PublishWithContext(ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to queue %s: %w", queue, err)
	}
	return nil
}

// Close closes the channel and connection.
func (c *RabbitmqClient) Close() error {
	if err := c.chn.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}
