// Package prefilter decides, per (user, channel, event_type),
// whether a channel is permitted right now: preference row, explicit
// disable, quiet hours, and a sliding rate limit, evaluated in that
// order with first-denial-wins.
package prefilter

import "time"

// InQuietHours reports whether now (UTC time-of-day) falls inside the
// [start, end) window. When end < start the window wraps midnight:
// in_quiet = now >= start OR now < end.
func InQuietHours(now, start, end time.Time) bool {
	n := timeOfDay(now)
	s := timeOfDay(start)
	e := timeOfDay(end)

	if e.Before(s) {
		return !n.Before(s) || n.Before(e)
	}
	return !n.Before(s) && n.Before(e)
}

// timeOfDay strips the date component, keeping only hour/minute/second.
func timeOfDay(t time.Time) time.Time {
	return time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
