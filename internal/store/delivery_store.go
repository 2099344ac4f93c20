package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"notifyhub/internal/model"
)

type DeliveryStore struct {
	db *pgxpool.Pool
}

func NewDeliveryStore(db *pgxpool.Pool) *DeliveryStore {
	return &DeliveryStore{db: db}
}

// Insert writes one audit row for a concluded delivery (a success or
// a terminal failure; retried attempts write no row). A worker calls
// this before it acks the broker message, so the row exists even if
// the process crashes right after.
func (s *DeliveryStore) Insert(ctx context.Context, d *model.Delivery) (int64, error) {
	metadataSrc := d.Metadata
	if metadataSrc == nil {
		metadataSrc = map[string]any{}
	}
	metadata, err := json.Marshal(metadataSrc)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO notification_deliveries
            (user_id, channel, event_type, event_id, status, attempt_count, metadata, error, delivered_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	var id int64
	err = s.db.QueryRow(ctx, query,
		d.UserID, d.Channel, d.EventType, d.EventID, d.Status, d.AttemptCount, metadata, d.Error, d.DeliveredAt,
	).Scan(&id)
	return id, err
}

// GetByEventID returns every delivery row recorded for one event,
// across all channels, oldest first.
func (s *DeliveryStore) GetByEventID(ctx context.Context, eventID string) ([]model.Delivery, error) {
	query := `
        SELECT id, user_id, channel, event_type, event_id, status, attempt_count, metadata, error, created_at, updated_at, delivered_at
        FROM notification_deliveries
        WHERE event_id = $1
        ORDER BY created_at ASC
    `
	return s.scanRows(ctx, query, eventID)
}

// GetByUser returns the most recent deliveries for a user, newest first.
func (s *DeliveryStore) GetByUser(ctx context.Context, userID string, limit int) ([]model.Delivery, error) {
	query := `
        SELECT id, user_id, channel, event_type, event_id, status, attempt_count, metadata, error, created_at, updated_at, delivered_at
        FROM notification_deliveries
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	return s.scanRows(ctx, query, userID, limit)
}

// GetFailed returns deliveries currently in the failed state, newest first.
func (s *DeliveryStore) GetFailed(ctx context.Context, limit int) ([]model.Delivery, error) {
	query := `
        SELECT id, user_id, channel, event_type, event_id, status, attempt_count, metadata, error, created_at, updated_at, delivered_at
        FROM notification_deliveries
        WHERE status = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	return s.scanRows(ctx, query, model.DeliveryFailed, limit)
}

func (s *DeliveryStore) scanRows(ctx context.Context, query string, args ...any) ([]model.Delivery, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Delivery
	for rows.Next() {
		var d model.Delivery
		var metadata []byte
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Channel, &d.EventType, &d.EventID, &d.Status,
			&d.AttemptCount, &metadata, &d.Error, &d.CreatedAt, &d.UpdatedAt, &d.DeliveredAt,
		); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &d.Metadata); err != nil {
				return nil, err
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
