package kafka

import "errors"

var (
	// ErrNoHandler indicates no handler was registered for an event type.
	ErrNoHandler = errors.New("no handler found for event type")

	// ErrConsumerClosed indicates the consumer has been closed.
	ErrConsumerClosed = errors.New("kafka consumer is closed")
)
