// Package middleware wraps the RabbitMQ plumbing shared by the pipeline
// processes: connection configuration, the work-queue producer/consumer
// pair and the leveled logger.
package middleware

import amqp "github.com/rabbitmq/amqp091-go"

// MessageMiddlewareError is the error code convention of the messaging
// layer; 0 means success.
type MessageMiddlewareError int

const (
	MessageMiddlewareSuccess MessageMiddlewareError = iota
	MessageMiddlewareMessageError
	MessageMiddlewareDisconnectedError
	MessageMiddlewareCloseError
	MessageMiddlewareDeleteError
)

// ConsumeChannel is the delivery stream handed to message callbacks.
type ConsumeChannel <-chan amqp.Delivery

// OnMessageCallback processes deliveries until the channel closes, then
// reports on done.
type OnMessageCallback func(consumeChannel ConsumeChannel, done chan error)
