// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package mq

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/go-core-stack/alerter/errors"
)

const (
	// default rabbitmq server port
	defaultPort = 5672

	// default prefetch count applied when none is configured
	defaultPrefetch = 10
)

// Config with which a message queue client will be created
type Config struct {
	// rabbitmq server host
	Host string

	// port over which the rabbitmq service is provided
	Port int

	// Username for authenticating with the broker
	UserName string

	// Password for authenticating the user with the broker
	Password string

	// topic exchange over which alerts are published
	Exchange string

	// queue this client consumes from
	Queue string

	// routing key binding the queue to the exchange
	RoutingKey string

	// number of unacknowledged deliveries allowed in flight
	Prefetch int
}

func (c *Config) validate() error {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Prefetch == 0 {
		c.Prefetch = defaultPrefetch
	}
	if c.Exchange == "" {
		return errors.Wrap(errors.MissingConfigKey, "mq exchange is not configured")
	}
	if c.Queue == "" {
		return errors.Wrap(errors.MissingConfigKey, "mq queue is not configured")
	}
	if c.UserName != "" && c.Password == "" {
		return errors.Wrap(errors.BlankCredential, "mq password configured as an empty string")
	}
	return nil
}

// Client handle for the alert exchange, usable for both
// consuming raw monitor output and publishing alerts
type Client struct {
	conf *Config
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Connect establishes the broker connection and sets up the
// exchange topology this client works with
func Connect(conf *Config) (*Client, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", conf.UserName, conf.Password, conf.Host, conf.Port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrapf(errors.ConnNotInitialized, "failed to connect to broker: %s", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(errors.ConnNotInitialized, "failed to open channel: %s", err)
	}

	log.Infof("declaring exchange %q", conf.Exchange)
	err = ch.ExchangeDeclare(conf.Exchange, "topic", true, false, false, false, nil)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(errors.ConnNotInitialized, "failed to declare exchange: %s", err)
	}

	log.Infof("declaring queue %q", conf.Queue)
	_, err = ch.QueueDeclare(conf.Queue, true, false, false, false, nil)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(errors.ConnNotInitialized, "failed to declare queue: %s", err)
	}

	err = ch.QueueBind(conf.Queue, conf.RoutingKey, conf.Exchange, false, nil)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(errors.ConnNotInitialized, "failed to bind queue: %s", err)
	}

	err = ch.Qos(conf.Prefetch, 0, false)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(errors.ConnNotInitialized, "failed to set channel qos: %s", err)
	}

	// enable delivery confirmation so publish failures surface
	// to the caller instead of being dropped by the broker
	err = ch.Confirm(false)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(errors.ConnNotInitialized, "failed to set confirm mode: %s", err)
	}

	return &Client{
		conf: conf,
		conn: conn,
		ch:   ch,
	}, nil
}

// Publish sends the given body over the alert exchange with the
// provided routing key, waiting for broker confirmation
func (c *Client) Publish(ctx context.Context, routingKey string, body []byte) error {
	if c == nil || c.ch == nil {
		return errors.Wrap(errors.ConnNotInitialized, "publish attempted before connecting to broker")
	}

	confirm, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, c.conf.Exchange, routingKey, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return errors.Wrapf(errors.MessageNotDelivered, "failed to publish message: %s", err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.MessageNotDelivered, "waiting for broker confirmation failed: %s", err)
	}
	if !acked {
		return errors.Wrap(errors.MessageNotDelivered, "broker did not acknowledge the message")
	}
	return nil
}

// Consume starts delivering messages from the configured queue,
// deliveries require explicit acknowledgement by the consumer
func (c *Client) Consume() (<-chan amqp.Delivery, error) {
	if c == nil || c.ch == nil {
		return nil, errors.Wrap(errors.ConnNotInitialized, "consume attempted before connecting to broker")
	}
	return c.ch.Consume(c.conf.Queue, "", false, false, false, false, nil)
}

// Close tears down the channel and the broker connection
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	return c.conn.Close()
}
