// Package analytics provides read-only aggregate queries over the
// delivery store: success rates, attempt counts, and top event types
// over rolling windows. No method here writes.
package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"notifyhub/internal/model"
	"notifyhub/internal/store"
)

type Reader struct {
	db        *pgxpool.Pool
	deliveries *store.DeliveryStore
}

func NewReader(db *pgxpool.Pool, deliveries *store.DeliveryStore) *Reader {
	return &Reader{db: db, deliveries: deliveries}
}

// ChannelMetrics summarizes delivery outcomes for one channel within
// the reporting window.
type ChannelMetrics struct {
	Channel      model.Channel `json:"channel"`
	Total        int           `json:"total"`
	Delivered    int           `json:"delivered"`
	Failed       int           `json:"failed"`
	SuccessRate  float64       `json:"success_rate"`
	AvgAttempts  float64       `json:"avg_attempts"`
}

// EventTypeCount is one entry in the top-event-types ranking.
type EventTypeCount struct {
	EventType model.EventType `json:"event_type"`
	Count     int             `json:"count"`
}

// Analytics is the aggregate report returned by GetAnalytics.
type Analytics struct {
	PeriodHours     int              `json:"period_hours"`
	TotalDeliveries int              `json:"total_deliveries"`
	SuccessRate     float64          `json:"success_rate"`
	ChannelMetrics  []ChannelMetrics `json:"channel_metrics"`
	TopEventTypes   []EventTypeCount `json:"top_event_types"`
}

// GetAnalytics aggregates delivery rows created within the last
// periodHours.
func (r *Reader) GetAnalytics(ctx context.Context, periodHours int) (Analytics, error) {
	since := time.Now().UTC().Add(-time.Duration(periodHours) * time.Hour)

	rows, err := r.queryWindow(ctx, since)
	if err != nil {
		return Analytics{}, err
	}

	return aggregate(rows, periodHours), nil
}

// aggregate is the pure computation behind GetAnalytics, split out so
// it can be exercised without a live store.
func aggregate(rows []model.Delivery, periodHours int) Analytics {
	report := Analytics{PeriodHours: periodHours}
	byChannel := make(map[model.Channel]*ChannelMetrics)
	byEventType := make(map[model.EventType]int)

	for _, d := range rows {
		report.TotalDeliveries++
		byEventType[d.EventType]++

		cm, ok := byChannel[d.Channel]
		if !ok {
			cm = &ChannelMetrics{Channel: d.Channel}
			byChannel[d.Channel] = cm
		}
		cm.Total++
		switch d.Status {
		case model.DeliveryDelivered, model.DeliverySent:
			cm.Delivered++
		case model.DeliveryFailed, model.DeliveryBounced:
			cm.Failed++
		}
	}

	var delivered int
	for _, cm := range byChannel {
		if cm.Total > 0 {
			cm.SuccessRate = round2(float64(cm.Delivered) / float64(cm.Total) * 100)
			cm.AvgAttempts = round2(float64(attemptsFor(rows, cm.Channel)) / float64(cm.Total))
		}
		delivered += cm.Delivered
		report.ChannelMetrics = append(report.ChannelMetrics, *cm)
	}
	sort.Slice(report.ChannelMetrics, func(i, j int) bool {
		return report.ChannelMetrics[i].Channel < report.ChannelMetrics[j].Channel
	})

	if report.TotalDeliveries > 0 {
		report.SuccessRate = round2(float64(delivered) / float64(report.TotalDeliveries) * 100)
	}

	for eventType, count := range byEventType {
		report.TopEventTypes = append(report.TopEventTypes, EventTypeCount{EventType: eventType, Count: count})
	}
	sort.Slice(report.TopEventTypes, func(i, j int) bool {
		return report.TopEventTypes[i].Count > report.TopEventTypes[j].Count
	})
	if len(report.TopEventTypes) > 10 {
		report.TopEventTypes = report.TopEventTypes[:10]
	}

	return report
}

func attemptsFor(rows []model.Delivery, channel model.Channel) int {
	var sum int
	for _, d := range rows {
		if d.Channel == channel {
			sum += d.AttemptCount
		}
	}
	return sum
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r *Reader) queryWindow(ctx context.Context, since time.Time) ([]model.Delivery, error) {
	query := `
        SELECT id, user_id, channel, event_type, event_id, status, attempt_count, metadata, error, created_at, updated_at, delivered_at
        FROM notification_deliveries
        WHERE created_at >= $1
    `
	rowsResult, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rowsResult.Close()

	var out []model.Delivery
	for rowsResult.Next() {
		var d model.Delivery
		var metadata []byte
		if err := rowsResult.Scan(
			&d.ID, &d.UserID, &d.Channel, &d.EventType, &d.EventID, &d.Status,
			&d.AttemptCount, &metadata, &d.Error, &d.CreatedAt, &d.UpdatedAt, &d.DeliveredAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rowsResult.Err()
}

// GetUserDeliveries returns up to limit deliveries for a user, newest first.
func (r *Reader) GetUserDeliveries(ctx context.Context, userID string, limit int) ([]model.Delivery, error) {
	return r.deliveries.GetByUser(ctx, userID, limit)
}

// GetFailedDeliveries returns terminal failures, newest first.
func (r *Reader) GetFailedDeliveries(ctx context.Context, limit int) ([]model.Delivery, error) {
	return r.deliveries.GetFailed(ctx, limit)
}

// GetDeliveriesByEventID returns every delivery row recorded for an event, oldest first.
func (r *Reader) GetDeliveriesByEventID(ctx context.Context, eventID string) ([]model.Delivery, error) {
	return r.deliveries.GetByEventID(ctx, eventID)
}
