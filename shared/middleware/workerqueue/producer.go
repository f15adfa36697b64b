// Package workerqueue implements the 1:1 work-queue producer/consumer pair
// the pipeline stages communicate through.
package workerqueue

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
)

// QueueProducer publishes messages to a named queue.
type QueueProducer struct {
	QueueName string
	channel   *amqp.Channel
}

// NewQueueProducer creates a producer with its own channel, or nil when the
// broker is unreachable.
func NewQueueProducer(queueName string, config *middleware.ConnectionConfig) *QueueProducer {
	channel, err := middleware.CreateMiddlewareChannel(config)
	if err != nil {
		middleware.LogError("Queue Producer", "Failed to create channel for queue '%s': %v", queueName, err)
		return nil
	}

	return &QueueProducer{
		QueueName: queueName,
		channel:   channel,
	}
}

// DeclareQueue declares the queue on the RabbitMQ server.
func (p *QueueProducer) DeclareQueue(durable, autoDelete, exclusive, noWait bool) middleware.MessageMiddlewareError {
	if p.channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	_, err := p.channel.QueueDeclare(p.QueueName, durable, autoDelete, exclusive, noWait, nil)
	if err != nil {
		middleware.LogError("Queue Producer", "Failed to declare queue '%s': %v", p.QueueName, err)
		return middleware.MessageMiddlewareMessageError
	}

	middleware.LogDebug("Queue Producer", "Queue '%s' declared (durable: %t)", p.QueueName, durable)
	return middleware.MessageMiddlewareSuccess
}

// Send publishes one message to the queue.
func (p *QueueProducer) Send(message []byte) middleware.MessageMiddlewareError {
	if p.channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	err := p.channel.Publish(
		"",          // default exchange
		p.QueueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType: "application/octet-stream",
			Body:        message,
		},
	)
	if err != nil {
		middleware.LogError("Queue Producer", "Queue '%s' send error: %v", p.QueueName, err)
		return middleware.MessageMiddlewareMessageError
	}
	return middleware.MessageMiddlewareSuccess
}

// Delete forces the remote deletion of the queue.
func (p *QueueProducer) Delete() middleware.MessageMiddlewareError {
	if p.channel == nil {
		return middleware.MessageMiddlewareDisconnectedError
	}

	if _, err := p.channel.QueueDelete(p.QueueName, false, false, false); err != nil {
		middleware.LogError("Queue Producer", "Queue '%s' delete error: %v", p.QueueName, err)
		return middleware.MessageMiddlewareDeleteError
	}
	return middleware.MessageMiddlewareSuccess
}

// Close disconnects the channel.
func (p *QueueProducer) Close() middleware.MessageMiddlewareError {
	if p.channel == nil {
		return middleware.MessageMiddlewareSuccess
	}

	if err := p.channel.Close(); err != nil {
		middleware.LogError("Queue Producer", "Queue '%s' close error: %v", p.QueueName, err)
		return middleware.MessageMiddlewareCloseError
	}
	p.channel = nil
	return middleware.MessageMiddlewareSuccess
}
