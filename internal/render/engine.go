package render

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notifyhub/internal/model"
	"notifyhub/internal/store"
)

// Engine looks up a routed event's template and turns it into a
// RenderedMessage, synthesizing a fallback when no template is
// configured for the (channel, event_type) pair.
type Engine struct {
	templates *store.TemplateStore
	logger    *zap.Logger
}

func NewEngine(templates *store.TemplateStore, logger *zap.Logger) *Engine {
	return &Engine{templates: templates, logger: logger}
}

func (e *Engine) Render(ctx context.Context, routed model.RoutedEvent) (model.RenderedMessage, error) {
	tmpl, err := e.templates.Get(ctx, routed.Channel, routed.EventType)
	if err != nil {
		return model.RenderedMessage{}, err
	}
	if tmpl == nil {
		e.logger.Info("no template configured, using fallback",
			zap.String("event_id", routed.EventID),
			zap.String("channel", string(routed.Channel)),
			zap.String("event_type", string(routed.EventType)),
		)
		tmpl = Fallback(routed.EventType, routed.Data)
	}

	renderCtx := BuildContext(routed.Data, routed.UserEmail)
	subject, body := Render(tmpl, renderCtx)

	return model.RenderedMessage{
		RoutedEvent: routed,
		Subject:     subject,
		Body:        body,
		RenderedAt:  time.Now().UTC(),
	}, nil
}
