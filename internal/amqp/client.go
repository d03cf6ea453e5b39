package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"expense-tracker/internal/core"
	applog "expense-tracker/internal/log"
)

// channel is the part of *amqp091.Channel the client publishes through.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type Client struct {
	conn         *amqp091.Connection
	channel      channel
	exchangeName string
	routingKey   string
	clock        core.Clock
	logger       *applog.Logger
}

func NewClient(url, exchangeName, routingKey string, logger *applog.Logger) (*Client, error) {
	conn, err := amqp091.DialConfig(url, amqp091.Config{
		Dial: amqp091.DefaultDial(5 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client, err := newClient(ch, exchangeName, routingKey, logger)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	client.conn = conn
	return client, nil
}

func newClient(ch channel, exchangeName, routingKey string, logger *applog.Logger) (*Client, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	client := &Client{
		channel:      ch,
		exchangeName: exchangeName,
		routingKey:   routingKey,
		clock:        core.SystemClock,
		logger:       logger.WithComponent(applog.ComponentAMQP),
	}

	if err := client.setup(); err != nil {
		return nil, fmt.Errorf("setup exchange: %w", err)
	}
	return client, nil
}

func (c *Client) setup() error {
	// Consumers own their queues; the publisher only needs the exchange.
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	return nil
}

// Notify publishes change as an ExpenseEvent.
func (c *Client) Notify(ctx context.Context, change core.Change) error {
	msg := NewExpenseEvent(change, c.clock.Now())
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.routingKey,   // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.MessageID,
			Type:         string(msg.Type),
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	c.logger.InfoContext(ctx, "Published expense event",
		applog.FieldOperation, applog.OpPublish,
		applog.FieldMessageID, msg.MessageID,
		applog.FieldExpenseID, msg.ID,
		"type", msg.Type,
		applog.FieldExchange, c.exchangeName,
		applog.FieldRoutingKey, c.routingKey)

	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
