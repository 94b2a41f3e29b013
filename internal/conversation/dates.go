package conversation

import (
	"fmt"
	"strings"
	"time"
)

// acceptedDateFormats lists the timestamp layouts accepted for the date
// field, tried in order.
var acceptedDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601-ish timestamp using the accepted layouts.
// Layouts without a zone are interpreted in local time, matching how week
// boundaries are computed.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedDateFormats {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want RFC3339, YYYY-MM-DDTHH:MM:SS, or YYYY-MM-DD)", s)
}
