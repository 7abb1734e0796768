package digest

import "time"

// Cutoff returns the earliest timestamp still considered recent. On a
// Monday it reaches back to Friday so weekend-adjacent activity is not
// lost; every other weekday looks back one day.
func Cutoff(now time.Time) time.Time {
	if now.Weekday() == time.Monday {
		return now.AddDate(0, 0, -3)
	}
	return now.AddDate(0, 0, -1)
}

// NaiveUTC rebuilds the wall-clock reading in UTC. Tracker timestamps are
// parsed with their zone offsets stripped, so the cutoff must shed the
// local offset the same way or the recency window shifts on non-UTC
// machines.
func NaiveUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
