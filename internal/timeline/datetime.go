package timeline

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateTime is returned for timestamps in no accepted layout.
var ErrInvalidDateTime = errors.New("invalid date-time")

// wallClockLayouts are accepted without an offset and read in the caller's zone.
var wallClockLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseDateTime parses an RFC3339 timestamp, keeping its offset, or a wall-clock
// timestamp interpreted in loc. A nil loc means time.Local.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}
