package ops

import "time"

// WeekBounds computes the inclusive [Monday 00:00:00, Sunday 23:59:59.999…]
// interval for the week `offset` whole weeks before now's week. The
// boundary always anchors to the Monday of now's week first, so the result
// does not depend on which day of the week "now" falls on. Times are in
// now's location.
func WeekBounds(now time.Time, offset int) (time.Time, time.Time) {
	// Weekday() has Sunday = 0; shift so Monday = 0.
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -daysSinceMonday)

	start := monday.AddDate(0, 0, -7*offset)
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// inWeek reports whether t falls inside [start, end], inclusive both ends.
func inWeek(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
