package prefilter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notifyhub/internal/model"
)

type fakePreferences struct {
	pref *model.Preference
	err  error
}

func (f *fakePreferences) Get(ctx context.Context, userID string, channel model.Channel, eventType model.EventType) (*model.Preference, error) {
	return f.pref, f.err
}

type fakeRateLimiter struct {
	allowed bool
	err     error
}

func (f *fakeRateLimiter) Allow(ctx context.Context, userID string, channel model.Channel, eventType model.EventType) (bool, error) {
	return f.allowed, f.err
}

func newTestFilter(pref *model.Preference, allowed bool, now time.Time) *Filter {
	return &Filter{
		preferences: &fakePreferences{pref: pref},
		rateLimiter: &fakeRateLimiter{allowed: allowed},
		now:         func() time.Time { return now },
	}
}

func TestDecide_NoPreferenceRowDeniesMarketingByDefault(t *testing.T) {
	f := newTestFilter(nil, true, clock(12, 0))

	d, err := f.Decide(context.Background(), "u1", model.ChannelEmail, model.EventTypeMarketing)
	require.NoError(t, err)
	require.Equal(t, DeniedMarketingDefault, d)
}

func TestDecide_NoPreferenceRowAllowsNonMarketingByDefault(t *testing.T) {
	f := newTestFilter(nil, true, clock(12, 0))

	d, err := f.Decide(context.Background(), "u1", model.ChannelEmail, model.EventTypeAccount)
	require.NoError(t, err)
	require.Equal(t, Allowed, d)
}

func TestDecide_ExplicitlyDisabledPreferenceDenies(t *testing.T) {
	pref := &model.Preference{Enabled: false}
	f := newTestFilter(pref, true, clock(12, 0))

	d, err := f.Decide(context.Background(), "u1", model.ChannelEmail, model.EventTypeAccount)
	require.NoError(t, err)
	require.Equal(t, DeniedExplicitDisable, d)
}

func TestDecide_QuietHoursDeniesWhenInsideWindow(t *testing.T) {
	start := clock(22, 0)
	end := clock(6, 0)
	pref := &model.Preference{Enabled: true, QuietHoursStart: &start, QuietHoursEnd: &end}
	f := newTestFilter(pref, true, clock(23, 30))

	d, err := f.Decide(context.Background(), "u1", model.ChannelEmail, model.EventTypeAccount)
	require.NoError(t, err)
	require.Equal(t, DeniedQuietHours, d)
}

func TestDecide_QuietHoursAllowsOutsideWindow(t *testing.T) {
	start := clock(22, 0)
	end := clock(6, 0)
	pref := &model.Preference{Enabled: true, QuietHoursStart: &start, QuietHoursEnd: &end}
	f := newTestFilter(pref, true, clock(12, 0))

	d, err := f.Decide(context.Background(), "u1", model.ChannelEmail, model.EventTypeAccount)
	require.NoError(t, err)
	require.Equal(t, Allowed, d)
}

func TestDecide_RateLimitDeniesWhenLimiterReturnsFalse(t *testing.T) {
	pref := &model.Preference{Enabled: true}
	f := newTestFilter(pref, false, clock(12, 0))

	d, err := f.Decide(context.Background(), "u1", model.ChannelEmail, model.EventTypeAccount)
	require.NoError(t, err)
	require.Equal(t, DeniedRateLimit, d)
}

func TestDecide_ExplicitDisableShortCircuitsBeforeRateLimiter(t *testing.T) {
	pref := &model.Preference{Enabled: false}
	limiter := &fakeRateLimiter{allowed: false}
	f := &Filter{
		preferences: &fakePreferences{pref: pref},
		rateLimiter: limiter,
		now:         func() time.Time { return clock(12, 0) },
	}

	d, err := f.Decide(context.Background(), "u1", model.ChannelEmail, model.EventTypeAccount)
	require.NoError(t, err)
	require.Equal(t, DeniedExplicitDisable, d, "rule 2 (explicit disable) should win before the rate limiter runs")
}
