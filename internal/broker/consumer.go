package broker

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Handler processes one delivery and is responsible for acking or
// nacking it itself: whether a failure should requeue, dead-letter,
// or drop silently depends on retry/attempt-count policy the broker
// package has no business deciding.
type Handler func(ctx context.Context, msg amqp091.Delivery)

// Consumer consumes a single durable queue bound to one routing key
// on the notifications exchange.
type Consumer struct {
	channel    *amqp091.Channel
	queue      amqp091.Queue
	routingKey string
	logger     *zap.Logger
}

// NewConsumer declares and binds queueName to routingKey on the
// notifications exchange, prefetching up to prefetchCount
// unacknowledged deliveries at a time.
func NewConsumer(conn *amqp091.Connection, queueName, routingKey string, prefetchCount int, logger *zap.Logger) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareExchanges(ch); err != nil {
		ch.Close()
		return nil, err
	}

	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	if err := ch.QueueBind(q.Name, routingKey, ExchangeName, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("bind queue %s to %s: %w", q.Name, routingKey, err)
	}

	logger.Info("consumer bound",
		zap.String("routing_key", routingKey),
		zap.String("queue", q.Name),
		zap.String("exchange", ExchangeName),
	)

	return &Consumer{channel: ch, queue: q, routingKey: routingKey, logger: logger}, nil
}

func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
}

// Consume blocks, dispatching each delivery to handler, until ctx is
// canceled. A handler panic is recovered and the message is nacked
// with requeue so it isn't silently lost.
func (c *Consumer) Consume(ctx context.Context, consumerTag string, handler Handler) error {
	deliveries, err := c.channel.Consume(c.queue.Name, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", c.queue.Name, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed for queue %s", c.queue.Name)
			}
			c.dispatch(ctx, msg, handler)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg amqp091.Delivery, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("handler panic recovered",
				zap.String("routing_key", c.routingKey),
				zap.Any("panic", r),
			)
			if err := msg.Nack(false, true); err != nil {
				c.logger.Error("failed to nack after panic", zap.Error(err))
			}
		}
	}()

	handler(ctx, msg)
}
