package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notifyhub/internal/model"
)

// PushAdapter simulates handing a rendered message to an FCM/APNS-style provider.
type PushAdapter struct {
	logger *zap.Logger
}

func NewPushAdapter(logger *zap.Logger) *PushAdapter {
	return &PushAdapter{logger: logger}
}

func (a *PushAdapter) Channel() model.Channel {
	return model.ChannelPush
}

func (a *PushAdapter) Send(ctx context.Context, msg model.RenderedMessage) (Result, error) {
	if len(msg.UserPushTokens) == 0 {
		return Result{}, &ErrMissingContact{Channel: model.ChannelPush, Field: "user_push_tokens"}
	}

	a.logger.Info("sending push",
		zap.String("event_id", msg.EventID),
		zap.Int("device_count", len(msg.UserPushTokens)),
	)

	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	return Result{Metadata: map[string]any{
		"transport":    "fcm",
		"device_count": len(msg.UserPushTokens),
	}}, nil
}
