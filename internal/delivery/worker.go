package delivery

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"notifyhub/internal/broker"
	"notifyhub/internal/cache"
	"notifyhub/internal/errs"
	"notifyhub/internal/model"
	"notifyhub/internal/store"
	"notifyhub/internal/transport"
	"notifyhub/pkg/circuitbreaker"
	"notifyhub/pkg/metrics"
)

// Worker consumes rendered messages for one channel, retries with
// per-channel backoff, trips an in-process circuit breaker on
// repeated failures, and dead-letters messages that exhaust
// MaxRetries.
type Worker struct {
	channel   model.Channel
	adapter   transport.Adapter
	deliveries *store.DeliveryStore
	attempts  *cache.AttemptCounter
	broadcast *cache.Broadcaster
	breaker   *circuitbreaker.CircuitBreaker
	publisher *broker.Publisher
	logger    *zap.Logger
}

func NewWorker(
	adapter transport.Adapter,
	deliveries *store.DeliveryStore,
	attempts *cache.AttemptCounter,
	broadcast *cache.Broadcaster,
	publisher *broker.Publisher,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		channel:    adapter.Channel(),
		adapter:    adapter,
		deliveries: deliveries,
		attempts:   attempts,
		broadcast:  broadcast,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultFailureThreshold),
		publisher:  publisher,
		logger:     logger,
	}
}

func (w *Worker) Handle(ctx context.Context, msg amqp091.Delivery) {
	if w.breaker.IsOpen() {
		cooldown := CooldownFor(w.channel)
		w.logger.Warn("circuit breaker open, cooling down before resuming",
			zap.String("channel", string(w.channel)), zap.Duration("cooldown", cooldown))
		time.Sleep(cooldown)
		w.breaker.Reset()
	}

	var rendered model.RenderedMessage
	if err := json.Unmarshal(msg.Body, &rendered); err != nil {
		w.logger.Error("failed to decode rendered message, dropping", zap.Error(err))
		_ = msg.Ack(false)
		return
	}

	count, err := w.attempts.IncrementAndGet(ctx, rendered.EventID, string(w.channel))
	if err != nil {
		w.ackOrRequeue(msg, rendered, err, "attempt counter failed")
		return
	}
	r := int(count) - 1

	if r > 0 {
		time.Sleep(BackoffFor(w.channel, r))
	}

	start := time.Now()
	result, sendErr := w.adapter.Send(ctx, rendered)
	metrics.RecordDeliveryDuration(string(w.channel), time.Since(start))

	if sendErr == nil {
		w.onSuccess(ctx, rendered, r, result, msg)
		return
	}
	w.onFailure(ctx, rendered, r, sendErr, msg)
}

func (w *Worker) onSuccess(ctx context.Context, rendered model.RenderedMessage, r int, result transport.Result, msg amqp091.Delivery) {
	w.breaker.RecordSuccess()

	now := time.Now().UTC()
	delivery := &model.Delivery{
		UserID:       rendered.UserID,
		Channel:      w.channel,
		EventType:    rendered.EventType,
		EventID:      rendered.EventID,
		Status:       model.DeliveryDelivered,
		AttemptCount: r + 1,
		Metadata:     result.Metadata,
		DeliveredAt:  &now,
	}
	if _, err := w.deliveries.Insert(ctx, delivery); err != nil {
		w.ackOrRequeue(msg, rendered, err, "failed to persist delivery row")
		return
	}

	if w.channel == model.ChannelInApp {
		w.publishBroadcast(ctx, rendered)
	}

	_ = w.attempts.Reset(ctx, rendered.EventID, string(w.channel))
	metrics.IncrementDeliveries(string(w.channel), string(model.DeliveryDelivered))
	_ = msg.Ack(false)
}

func (w *Worker) publishBroadcast(ctx context.Context, rendered model.RenderedMessage) {
	err := w.broadcast.Publish(ctx, cache.InAppMessage{
		UserID:  rendered.UserID,
		EventID: rendered.EventID,
		Subject: rendered.Subject,
		Body:    rendered.Body,
	})
	if err != nil {
		w.logger.Warn("broadcast publish failed, delivery still recorded as delivered",
			zap.String("event_id", rendered.EventID), zap.Error(err))
	}
}

func (w *Worker) onFailure(ctx context.Context, rendered model.RenderedMessage, r int, sendErr error, msg amqp091.Delivery) {
	w.breaker.RecordFailure()

	if r+1 < MaxRetries {
		w.logger.Warn("delivery attempt failed, will retry",
			zap.String("event_id", rendered.EventID), zap.Int("attempt", r+1), zap.Error(sendErr))
		_ = msg.Nack(false, true)
		return
	}

	w.logger.Error("delivery exhausted retries, moving to dead-letter queue",
		zap.String("event_id", rendered.EventID), zap.Error(sendErr))

	entry := model.DLQEntry{
		RenderedMessage: rendered,
		Error:           sendErr.Error(),
		MovedToDLQAt:    time.Now().UTC(),
	}
	if err := w.publisher.PublishToDLQ(ctx, broker.DeliveryKey(string(w.channel)), entry); err != nil {
		w.ackOrRequeue(msg, rendered, err, "failed to publish to DLQ")
		return
	}

	delivery := &model.Delivery{
		UserID:       rendered.UserID,
		Channel:      w.channel,
		EventType:    rendered.EventType,
		EventID:      rendered.EventID,
		Status:       model.DeliveryFailed,
		AttemptCount: MaxRetries,
		Error:        sendErr.Error(),
	}
	if _, err := w.deliveries.Insert(ctx, delivery); err != nil {
		w.logger.Error("failed to persist failed delivery row", zap.Error(err))
	}

	_ = w.attempts.Reset(ctx, rendered.EventID, string(w.channel))
	metrics.IncrementDeliveries(string(w.channel), string(model.DeliveryFailed))
	_ = msg.Ack(false)
}

// ackOrRequeue classifies err and requeues the message if the
// classifier thinks the failure will clear on retry, otherwise drops
// it. This governs infrastructure failures around a delivery attempt
// (attempt counter, store, DLQ publish); the transport send itself is
// governed by the channel's MaxRetries budget in onFailure, not by
// this generic classification.
func (w *Worker) ackOrRequeue(msg amqp091.Delivery, rendered model.RenderedMessage, err error, action string) {
	classified := errs.Classify(err)
	if classified.Retryable() {
		w.logger.Error(action+", requeueing",
			zap.String("event_id", rendered.EventID), zap.String("category", string(classified.Category)), zap.Error(err))
		_ = msg.Nack(false, true)
		return
	}

	w.logger.Error(action+", dropping",
		zap.String("event_id", rendered.EventID), zap.String("category", string(classified.Category)), zap.Error(err))
	_ = msg.Ack(false)
}
