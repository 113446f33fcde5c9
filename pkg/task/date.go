package task

import (
	"fmt"
	"time"
)

// DateLayout is the calendar day key format. Lexicographic order of keys in
// this layout matches chronological order.
const DateLayout = "2006-01-02"

// DateOf returns the day key of t in loc. A nil loc means t's own location.
func DateOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD day key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("task: invalid date %q: %w", s, err)
	}
	return t, nil
}

// AddDays shifts a day key by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}
