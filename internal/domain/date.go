// internal/domain/date.go
package domain

import "time"

// DateFormats are the recognized layouts for caller-supplied dates, tried
// in order. Date-only values are interpreted as midnight UTC.
var DateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses s against the recognized layouts. The second return
// value reports whether any layout matched.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range DateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
