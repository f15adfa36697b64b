package middleware

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConnectionConfig holds configuration for RabbitMQ connections.
type ConnectionConfig struct {
	URL      string
	Username string
	Password string
	Host     string
	Port     int
	VHost    string
}

// DefaultConnectionConfig returns a configuration for a local RabbitMQ.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Username: "guest",
		Password: "guest",
		Host:     "localhost",
		Port:     5672,
		VHost:    "/",
	}
}

// BuildURL constructs a RabbitMQ URL from the configuration.
func (c *ConnectionConfig) BuildURL() string {
	if c.URL != "" {
		return c.URL
	}
	vhost := c.VHost
	if vhost == "" {
		vhost = "/"
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%d%s", c.Username, c.Password, c.Host, c.Port, vhost)
}

// TestConnection dials the broker once and closes the connection.
func TestConnection(config *ConnectionConfig) error {
	conn, err := amqp.Dial(config.BuildURL())
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	return nil
}

// WaitForConnection waits for RabbitMQ to become available with retries.
func WaitForConnection(config *ConnectionConfig, maxRetries int, retryInterval time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := TestConnection(config); err == nil {
			return nil
		}
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}
	return fmt.Errorf("failed to connect to RabbitMQ after %d retries", maxRetries)
}

// CreateMiddlewareChannel opens a connection and channel with the QoS
// settings the pipeline workers rely on.
func CreateMiddlewareChannel(config *ConnectionConfig) (*amqp.Channel, error) {
	conn, err := amqp.Dial(config.BuildURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ connection: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	// Prefetch one message at a time so a slow worker never buffers a
	// whole dataset in memory.
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	return ch, nil
}
