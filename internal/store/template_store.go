package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notifyhub/internal/model"
)

type TemplateStore struct {
	db *pgxpool.Pool
}

func NewTemplateStore(db *pgxpool.Pool) *TemplateStore {
	return &TemplateStore{db: db}
}

// Get returns the template for a (channel, event_type) pair, or nil
// if none is configured — the renderer falls back to a generic body
// in that case.
func (s *TemplateStore) Get(ctx context.Context, channel model.Channel, eventType model.EventType) (*model.Template, error) {
	query := `
        SELECT channel, event_type, subject, body, variables
        FROM notification_templates
        WHERE channel = $1 AND event_type = $2
    `
	var t model.Template
	err := s.db.QueryRow(ctx, query, channel, eventType).Scan(
		&t.Channel, &t.EventType, &t.Subject, &t.Body, &t.Variables,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
