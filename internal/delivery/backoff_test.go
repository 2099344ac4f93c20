package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"notifyhub/internal/model"
)

func TestBackoffFor_FirstAttemptNeverSleeps(t *testing.T) {
	require.Equal(t, time.Duration(0), BackoffFor(model.ChannelEmail, 0))
}

func TestBackoffFor_FollowsPerChannelRetryTable(t *testing.T) {
	cases := []struct {
		channel model.Channel
		r       int
		want    time.Duration
	}{
		{model.ChannelEmail, 1, 1 * time.Second},
		{model.ChannelEmail, 2, 5 * time.Second},
		{model.ChannelEmail, 3, 15 * time.Second},
		{model.ChannelSMS, 1, 2 * time.Second},
		{model.ChannelSMS, 2, 10 * time.Second},
		{model.ChannelSMS, 3, 30 * time.Second},
		{model.ChannelPush, 1, 1 * time.Second},
	}
	for _, c := range cases {
		require.Equal(t, c.want, BackoffFor(c.channel, c.r), "channel=%s r=%d", c.channel, c.r)
	}
}

func TestBackoffFor_ClampsToLastEntryBeyondTableLength(t *testing.T) {
	require.Equal(t, 15*time.Second, BackoffFor(model.ChannelEmail, 10))
}

func TestBackoffFor_InAppNeverSleeps(t *testing.T) {
	require.Equal(t, time.Duration(0), BackoffFor(model.ChannelInApp, 2))
}

func TestCooldownFor_SMSIsLongerThanOtherChannels(t *testing.T) {
	require.Equal(t, 15*time.Second, CooldownFor(model.ChannelSMS))
	require.Equal(t, 10*time.Second, CooldownFor(model.ChannelEmail))
	require.Equal(t, 10*time.Second, CooldownFor(model.ChannelPush))
}
