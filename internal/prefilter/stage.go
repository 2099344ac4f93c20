package prefilter

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"notifyhub/internal/broker"
	"notifyhub/internal/errs"
	"notifyhub/internal/model"
	"notifyhub/pkg/metrics"
)

// Stage wires the Filter to the broker: consume an enriched event,
// decide each requested channel, publish one routed event per
// allowed channel, ack unconditionally once publishing is done.
type Stage struct {
	filter    *Filter
	publisher *broker.Publisher
	logger    *zap.Logger
}

func NewStage(filter *Filter, publisher *broker.Publisher, logger *zap.Logger) *Stage {
	return &Stage{filter: filter, publisher: publisher, logger: logger}
}

func (s *Stage) Handle(ctx context.Context, msg amqp091.Delivery) {
	var enriched model.EnrichedEvent
	if err := json.Unmarshal(msg.Body, &enriched); err != nil {
		s.logger.Error("failed to decode enriched event, dropping", zap.Error(err))
		_ = msg.Ack(false)
		return
	}

	allowedAny := false
	for _, channel := range enriched.Channels {
		decision, err := s.filter.Decide(ctx, enriched.UserID, channel, enriched.EventType)
		if err != nil {
			s.ackOrRequeue(msg, enriched, err, "preference decision failed")
			return
		}

		if decision != Allowed {
			s.logger.Debug("channel denied",
				zap.String("event_id", enriched.EventID),
				zap.String("channel", string(channel)),
				zap.String("decision", string(decision)),
			)
			continue
		}

		routed := model.RoutedEvent{EnrichedEvent: enriched, Channel: channel}
		if err := s.publisher.Publish(ctx, broker.RoutedKey(string(channel)), routed); err != nil {
			s.ackOrRequeue(msg, enriched, err, "failed to publish routed event")
			return
		}
		allowedAny = true
	}

	if !allowedAny {
		s.logger.Info("all channels denied", zap.String("event_id", enriched.EventID))
	}

	_ = msg.Ack(false)
}

// ackOrRequeue classifies err and requeues the message if the
// classifier thinks the failure will clear on retry, otherwise drops
// it and records the classified reason.
func (s *Stage) ackOrRequeue(msg amqp091.Delivery, enriched model.EnrichedEvent, err error, action string) {
	classified := errs.Classify(err)
	if classified.Retryable() {
		s.logger.Error(action+", requeueing",
			zap.String("event_id", enriched.EventID), zap.String("category", string(classified.Category)), zap.Error(err))
		_ = msg.Nack(false, true)
		return
	}

	s.logger.Error(action+", dropping",
		zap.String("event_id", enriched.EventID), zap.String("category", string(classified.Category)), zap.Error(err))
	metrics.IncrementEventsFailed(string(enriched.EventType), classified.Reason)
	_ = msg.Ack(false)
}
