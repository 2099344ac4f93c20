// Package broker wires the pipeline's five stages to a RabbitMQ topic
// exchange: one durable queue per routing key, explicit ack/nack, and
// a dead-letter exchange for messages a worker gives up on.
package broker

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName is the topic exchange every stage publishes to and
	// binds its queue against.
	ExchangeName = "notifications"

	// DLQExchangeName is the dead-letter exchange delivery workers
	// publish exhausted messages to.
	DLQExchangeName = "notifications.dlq"

	// Routing keys, one per pipeline hop. Routed and delivery keys are
	// parameterized by channel via RoutedKey/DeliveryKey.
	SubjectEvents   = "notifications.events"
	SubjectEnriched = "notifications.enriched"

	// Per-stage consumer prefetch counts: how many unacknowledged
	// deliveries a stage pulls in one batch before acking back.
	PrefetchIngestion = 10
	PrefetchPrefilter = 10
	PrefetchRenderer  = 5
	PrefetchWorker    = 5
	PrefetchInApp     = 10
)

// RoutedKey returns the routing key a prefilter stage publishes a
// RoutedEvent to, and the renderer's consumer for that channel consumes.
func RoutedKey(channel string) string {
	return fmt.Sprintf("notifications.routed.%s", channel)
}

// DeliveryKey returns the routing key a renderer publishes a
// RenderedMessage to for a given channel.
func DeliveryKey(channel string) string {
	return fmt.Sprintf("notifications.delivery.%s", channel)
}

// Dial opens a connection to the broker. Every stage calls this once
// at startup; the exchanges are declared by NewPublisher and
// NewConsumer on the channels they open.
func Dial(url string) (*amqp091.Connection, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}

func declareExchanges(ch *amqp091.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}
	if err := ch.ExchangeDeclare(DLQExchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", DLQExchangeName, err)
	}
	return nil
}
