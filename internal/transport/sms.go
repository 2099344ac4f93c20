package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notifyhub/internal/model"
)

// SMSAdapter simulates handing a rendered message to a Twilio-style provider.
type SMSAdapter struct {
	logger *zap.Logger
}

func NewSMSAdapter(logger *zap.Logger) *SMSAdapter {
	return &SMSAdapter{logger: logger}
}

func (a *SMSAdapter) Channel() model.Channel {
	return model.ChannelSMS
}

func (a *SMSAdapter) Send(ctx context.Context, msg model.RenderedMessage) (Result, error) {
	if msg.UserPhone == "" {
		return Result{}, &ErrMissingContact{Channel: model.ChannelSMS, Field: "user_phone"}
	}

	a.logger.Info("sending sms",
		zap.String("event_id", msg.EventID),
		zap.String("recipient", msg.UserPhone),
	)

	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	return Result{Metadata: map[string]any{
		"recipient": msg.UserPhone,
		"transport": "twilio",
	}}, nil
}
