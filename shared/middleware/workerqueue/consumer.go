package workerqueue

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
)

// QueueConsumer consumes messages from a named queue with manual acks.
type QueueConsumer struct {
	QueueName string
	channel   *amqp.Channel
	consuming bool
}

// NewQueueConsumer creates a consumer with its own channel, or nil when the
// broker is unreachable.
func NewQueueConsumer(queueName string, config *middleware.ConnectionConfig) *QueueConsumer {
	channel, err := middleware.CreateMiddlewareChannel(config)
	if err != nil {
		middleware.LogError("Queue Consumer", "Failed to create channel for queue '%s': %v", queueName, err)
		return nil
	}

	return &QueueConsumer{
		QueueName: queueName,
		channel:   channel,
	}
}

// DeclareQueue declares the queue so consuming can start before any
// producer has connected.
func (c *QueueConsumer) DeclareQueue(durable, autoDelete, exclusive, noWait bool) middleware.MessageMiddlewareError {
	if c.channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	_, err := c.channel.QueueDeclare(c.QueueName, durable, autoDelete, exclusive, noWait, nil)
	if err != nil {
		middleware.LogError("Queue Consumer", "Failed to declare queue '%s': %v", c.QueueName, err)
		return middleware.MessageMiddlewareMessageError
	}
	return middleware.MessageMiddlewareSuccess
}

// StartConsuming runs the callback over the delivery stream in a goroutine.
// Acknowledgments are handled by the callback.
func (c *QueueConsumer) StartConsuming(onMessageCallback middleware.OnMessageCallback) middleware.MessageMiddlewareError {
	if c.channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	deliveries, err := c.channel.Consume(
		c.QueueName,
		"",    // consumer tag (auto-generated)
		false, // auto-ack (acknowledgments are manual)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		middleware.LogError("Queue Consumer", "Failed to start consuming from queue '%s': %v", c.QueueName, err)
		return middleware.MessageMiddlewareMessageError
	}

	c.consuming = true
	go func() {
		done := make(chan error, 1)
		middleware.LogDebug("Queue Consumer", "Consumer started for queue '%s'", c.QueueName)
		onMessageCallback(middleware.ConsumeChannel(deliveries), done)
	}()

	return middleware.MessageMiddlewareSuccess
}

// StopConsuming cancels the consumer.
func (c *QueueConsumer) StopConsuming() middleware.MessageMiddlewareError {
	if c.channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}
	if !c.consuming {
		middleware.LogDebug("Queue Consumer", "Not consuming from queue '%s', StopConsuming has no effect", c.QueueName)
		return middleware.MessageMiddlewareSuccess
	}

	// An empty tag cancels every consumer on this channel.
	if err := c.channel.Cancel("", false); err != nil {
		middleware.LogError("Queue Consumer", "Failed to cancel consumer for queue '%s': %v", c.QueueName, err)
		return middleware.MessageMiddlewareMessageError
	}
	c.consuming = false
	return middleware.MessageMiddlewareSuccess
}

// Close disconnects the channel.
func (c *QueueConsumer) Close() middleware.MessageMiddlewareError {
	if c.channel == nil {
		return middleware.MessageMiddlewareSuccess
	}

	if err := c.channel.Close(); err != nil {
		middleware.LogError("Queue Consumer", "Queue '%s' close error: %v", c.QueueName, err)
		return middleware.MessageMiddlewareCloseError
	}
	c.channel = nil
	return middleware.MessageMiddlewareSuccess
}
