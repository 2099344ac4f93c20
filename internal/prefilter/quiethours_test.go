package prefilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clock(hour, min int) time.Time {
	return time.Date(2026, 8, 3, hour, min, 0, 0, time.UTC)
}

func TestInQuietHours_NonWrappingWindow(t *testing.T) {
	start := clock(22, 0)
	end := clock(23, 0)

	require.True(t, InQuietHours(clock(22, 30), start, end), "22:30 should be inside [22:00, 23:00)")
	require.False(t, InQuietHours(clock(21, 59), start, end), "21:59 should be outside [22:00, 23:00)")
	require.False(t, InQuietHours(clock(23, 0), start, end), "end boundary should be exclusive")
	require.True(t, InQuietHours(clock(22, 0), start, end), "start boundary should be inclusive")
}

func TestInQuietHours_WrapsMidnightDeniesAcrossBoundary(t *testing.T) {
	start := clock(22, 0)
	end := clock(6, 0)

	require.True(t, InQuietHours(clock(23, 30), start, end), "23:30 should be inside the wrapped window")
	require.True(t, InQuietHours(clock(3, 0), start, end), "03:00 should be inside the wrapped window")
	require.False(t, InQuietHours(clock(12, 0), start, end), "midday should be outside the wrapped window")
	require.False(t, InQuietHours(clock(6, 0), start, end), "end boundary should be exclusive even when wrapping")
	require.True(t, InQuietHours(clock(22, 0), start, end), "start boundary should be inclusive even when wrapping")
}

func TestInQuietHours_IgnoresDateComponent(t *testing.T) {
	start := clock(22, 0)
	end := clock(6, 0)
	now := time.Date(1999, 1, 1, 23, 0, 0, 0, time.UTC)

	require.True(t, InQuietHours(now, start, end), "date component should be ignored when comparing time-of-day")
}
