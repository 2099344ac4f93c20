package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher publishes JSON payloads to the notifications exchange.
// A single Publisher's channel is safe for one goroutine at a time;
// stages that publish concurrently should hold their own.
type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewPublisher(conn *amqp091.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareExchanges(ch); err != nil {
		ch.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(DLQExchangeName, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", DLQExchangeName, err)
	}
	if err := ch.QueueBind(DLQExchangeName, "#", DLQExchangeName, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("bind queue %s: %w", DLQExchangeName, err)
	}
	return &Publisher{conn: conn, channel: ch}, nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
}

// Publish marshals payload and sends it to the notifications exchange
// under routingKey as a persistent message.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	})
}

// PublishToDLQ marshals payload (a model.DLQEntry — the exhausted
// message plus its error and move timestamp) and sends it to the
// dead-letter exchange under routingKey.
func (p *Publisher) PublishToDLQ(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal dlq payload: %w", err)
	}

	return p.channel.PublishWithContext(ctx, DLQExchangeName, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	})
}
