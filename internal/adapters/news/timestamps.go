package news

import (
	"strconv"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"20060102T150405",
	"20060102T1504",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"20060102",
	"2006-01-02",
}

// ParseTimestamp normalizes provider timestamps to a UTC instant.
// Accepts unix seconds, ISO-8601 and the compact YYYYMMDDTHHMMSS form.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// 9+ digits so a bare YYYYMMDD date is not read as seconds
	if len(s) >= 9 {
		if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
			return UnixTimestamp(secs), secs > 0
		}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// UnixTimestamp converts unix seconds, mapping non-positive values to the zero time
func UnixTimestamp(secs int64) time.Time {
	if secs <= 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0).UTC()
}
