package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notifyhub/internal/model"
)

const quietHoursLayout = "15:04:05"

type PreferenceStore struct {
	db *pgxpool.Pool
}

func NewPreferenceStore(db *pgxpool.Pool) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Get returns the preference row for a (user, channel, event_type)
// triple, or nil if none exists — absence means the prefilter falls
// back to its default-allow/default-deny policy per event type.
func (s *PreferenceStore) Get(ctx context.Context, userID string, channel model.Channel, eventType model.EventType) (*model.Preference, error) {
	query := `
        SELECT user_id, channel, event_type, enabled, quiet_hours_start, quiet_hours_end, created_at, updated_at
        FROM notification_preferences
        WHERE user_id = $1 AND channel = $2 AND event_type = $3
    `
	var p model.Preference
	var start, end *string
	err := s.db.QueryRow(ctx, query, userID, channel, eventType).Scan(
		&p.UserID, &p.Channel, &p.EventType, &p.Enabled,
		&start, &end, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if p.QuietHoursStart, err = parseTimeOfDay(start); err != nil {
		return nil, err
	}
	if p.QuietHoursEnd, err = parseTimeOfDay(end); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or replaces the preference row for its (user,
// channel, event_type) key.
func (s *PreferenceStore) Upsert(ctx context.Context, p *model.Preference) error {
	query := `
        INSERT INTO notification_preferences
            (user_id, channel, event_type, enabled, quiet_hours_start, quiet_hours_end, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (user_id, channel, event_type) DO UPDATE SET
            enabled = EXCLUDED.enabled,
            quiet_hours_start = EXCLUDED.quiet_hours_start,
            quiet_hours_end = EXCLUDED.quiet_hours_end,
            updated_at = NOW()
    `
	_, err := s.db.Exec(ctx, query,
		p.UserID, p.Channel, p.EventType, p.Enabled,
		formatTimeOfDay(p.QuietHoursStart), formatTimeOfDay(p.QuietHoursEnd),
	)
	return err
}

func parseTimeOfDay(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(quietHoursLayout, *s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func formatTimeOfDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(quietHoursLayout)
	return &s
}
