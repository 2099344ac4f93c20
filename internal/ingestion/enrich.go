package ingestion

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"notifyhub/internal/model"
	"notifyhub/internal/store"
)

// Enrich resolves the event's user and copies contact fields onto an
// EnrichedEvent. A missing user is not an error: the enriched event is
// still produced, just without contact fields, so downstream channels
// that need them fail visibly via DLQ rather than silently dropping
// the event here.
func Enrich(ctx context.Context, users *store.UserStore, event model.SubmittedEvent) (model.EnrichedEvent, error) {
	enriched := model.EnrichedEvent{
		SubmittedEvent: event,
		EnrichedAt:     time.Now().UTC(),
	}

	user, err := users.Get(ctx, event.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return enriched, nil
	}
	if err != nil {
		return model.EnrichedEvent{}, err
	}

	enriched.UserEmail = user.Email
	enriched.UserPhone = user.Phone
	enriched.UserPushTokens = user.PushTokens
	return enriched, nil
}
