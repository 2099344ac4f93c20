package transport

import (
	"context"

	"go.uber.org/zap"

	"notifyhub/internal/model"
)

// InAppAdapter has no external I/O and no contact precondition: the
// delivery row itself is the record, and the broadcast publish that
// lets a real-time client observe it is a separate step the in-app
// worker performs after a successful Send.
type InAppAdapter struct {
	logger *zap.Logger
}

func NewInAppAdapter(logger *zap.Logger) *InAppAdapter {
	return &InAppAdapter{logger: logger}
}

func (a *InAppAdapter) Channel() model.Channel {
	return model.ChannelInApp
}

func (a *InAppAdapter) Send(ctx context.Context, msg model.RenderedMessage) (Result, error) {
	a.logger.Info("recording in-app notification", zap.String("event_id", msg.EventID))

	return Result{Metadata: map[string]any{
		"transport": "in_app",
	}}, nil
}
