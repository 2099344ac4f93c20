package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notifyhub/internal/model"
)

// EmailAdapter simulates handing a rendered message to an SMTP/SES/
// SendGrid-style provider.
type EmailAdapter struct {
	logger *zap.Logger
}

func NewEmailAdapter(logger *zap.Logger) *EmailAdapter {
	return &EmailAdapter{logger: logger}
}

func (a *EmailAdapter) Channel() model.Channel {
	return model.ChannelEmail
}

func (a *EmailAdapter) Send(ctx context.Context, msg model.RenderedMessage) (Result, error) {
	if msg.UserEmail == "" {
		return Result{}, &ErrMissingContact{Channel: model.ChannelEmail, Field: "user_email"}
	}

	a.logger.Info("sending email",
		zap.String("event_id", msg.EventID),
		zap.String("recipient", msg.UserEmail),
		zap.String("subject", msg.Subject),
	)

	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	return Result{Metadata: map[string]any{
		"recipient": msg.UserEmail,
		"transport": "smtp",
	}}, nil
}
