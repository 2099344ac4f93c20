package ingestion

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"notifyhub/internal/broker"
	"notifyhub/internal/cache"
	"notifyhub/internal/errs"
	"notifyhub/internal/model"
	"notifyhub/internal/store"
	"notifyhub/pkg/metrics"
)

// Stage wires validate/dedup/enrich to the broker for one submitted
// event at a time.
type Stage struct {
	users     *store.UserStore
	dedup     *cache.Deduplicator
	publisher *broker.Publisher
	logger    *zap.Logger
}

func NewStage(users *store.UserStore, dedup *cache.Deduplicator, publisher *broker.Publisher, logger *zap.Logger) *Stage {
	return &Stage{users: users, dedup: dedup, publisher: publisher, logger: logger}
}

func (s *Stage) Handle(ctx context.Context, msg amqp091.Delivery) {
	var event model.SubmittedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		s.logger.Error("failed to decode submitted event, dropping", zap.Error(err))
		metrics.IncrementEventsFailed("unknown", "validation")
		_ = msg.Ack(false)
		return
	}

	if event.Priority == "" {
		event.Priority = model.PriorityNormal
	}

	metrics.IncrementEventsReceived(string(event.EventType))

	if err := Validate(event); err != nil {
		s.logger.Warn("submitted event failed validation, dropping",
			zap.String("event_id", event.EventID), zap.Error(err))
		metrics.IncrementEventsFailed(string(event.EventType), "validation")
		_ = msg.Ack(false)
		return
	}

	seen, err := s.dedup.MarkSeen(ctx, event.EventID)
	if err != nil {
		s.ackOrRequeue(msg, event, err, "dedup check failed")
		return
	}
	if !seen {
		s.logger.Debug("duplicate event dropped", zap.String("event_id", event.EventID))
		metrics.IncrementDuplicates(string(event.EventType))
		_ = msg.Ack(false)
		return
	}

	enriched, err := Enrich(ctx, s.users, event)
	if err != nil {
		s.ackOrRequeue(msg, event, err, "enrichment failed")
		return
	}

	if err := s.publisher.Publish(ctx, broker.SubjectEnriched, enriched); err != nil {
		s.ackOrRequeue(msg, event, err, "failed to publish enriched event")
		return
	}

	metrics.IncrementEventsProcessed(string(event.EventType))
	_ = msg.Ack(false)
}

// ackOrRequeue classifies err and requeues the message if the
// classifier thinks the failure will clear on retry, otherwise drops
// it and records the classified reason.
func (s *Stage) ackOrRequeue(msg amqp091.Delivery, event model.SubmittedEvent, err error, action string) {
	classified := errs.Classify(err)
	if classified.Retryable() {
		s.logger.Error(action+", requeueing",
			zap.String("event_id", event.EventID), zap.String("category", string(classified.Category)), zap.Error(err))
		_ = msg.Nack(false, true)
		return
	}

	s.logger.Error(action+", dropping",
		zap.String("event_id", event.EventID), zap.String("category", string(classified.Category)), zap.Error(err))
	metrics.IncrementEventsFailed(string(event.EventType), classified.Reason)
	_ = msg.Ack(false)
}
