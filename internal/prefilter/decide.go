package prefilter

import (
	"context"
	"time"

	"notifyhub/internal/cache"
	"notifyhub/internal/model"
	"notifyhub/internal/store"
)

// Decision names which rule denied a channel, or that it was allowed.
type Decision string

const (
	Allowed                 Decision = "allowed"
	DeniedMarketingDefault  Decision = "denied_marketing_default"
	DeniedExplicitDisable   Decision = "denied_explicit_disable"
	DeniedQuietHours        Decision = "denied_quiet_hours"
	DeniedRateLimit         Decision = "denied_rate_limit"
)

// preferenceGetter is satisfied by *store.PreferenceStore; narrowed
// to an interface here so Decide's rule evaluation can be tested
// without a live database.
type preferenceGetter interface {
	Get(ctx context.Context, userID string, channel model.Channel, eventType model.EventType) (*model.Preference, error)
}

// rateAllower is satisfied by *cache.RateLimiter.
type rateAllower interface {
	Allow(ctx context.Context, userID string, channel model.Channel, eventType model.EventType) (bool, error)
}

// Filter evaluates the four-rule decision algorithm against the
// preference store and the rate limiter.
type Filter struct {
	preferences preferenceGetter
	rateLimiter rateAllower
	now         func() time.Time
}

func NewFilter(preferences *store.PreferenceStore, rateLimiter *cache.RateLimiter) *Filter {
	return &Filter{preferences: preferences, rateLimiter: rateLimiter, now: func() time.Time { return time.Now().UTC() }}
}

// Decide evaluates rules 1-4 in order, first denial wins. Rule 4 (the
// rate limiter) is the only rule that mutates state, and it only runs
// when rules 1-3 have not already denied the channel.
func (f *Filter) Decide(ctx context.Context, userID string, channel model.Channel, eventType model.EventType) (Decision, error) {
	pref, err := f.preferences.Get(ctx, userID, channel, eventType)
	if err != nil {
		return "", err
	}

	if pref == nil {
		if eventType == model.EventTypeMarketing {
			return DeniedMarketingDefault, nil
		}
	} else {
		if !pref.Enabled {
			return DeniedExplicitDisable, nil
		}
		if pref.HasQuietHours() && InQuietHours(f.now(), *pref.QuietHoursStart, *pref.QuietHoursEnd) {
			return DeniedQuietHours, nil
		}
	}

	allowed, err := f.rateLimiter.Allow(ctx, userID, channel, eventType)
	if err != nil {
		return "", err
	}
	if !allowed {
		return DeniedRateLimit, nil
	}

	return Allowed, nil
}
