// internal/domain/date_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-01-15T10:30:00Z", time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-01-15T10:30:00", time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-01-15 10:30:00", time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-01-15", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.in)
		assert.True(t, ok, "expected %q to parse", c.in)
		assert.True(t, c.want.Equal(got), "parsed %q to %s", c.in, got)
	}

	for _, in := range []string{"", "yesterday", "15/01/2026", "2026-13-40"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, "expected %q to be rejected", in)
	}
}
