// Package timeutil parses human-friendly look-back windows such as "1w" or
// "3d" and turns them into day ranges.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/focus/pkg/task"
)

const (
	// DefaultWindow is used when no window is given.
	DefaultWindow = "1w"

	day  = 24 * time.Hour
	week = 7 * day
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]time.Duration{
		"h":      time.Hour,
		"hr":     time.Hour,
		"hrs":    time.Hour,
		"hour":   time.Hour,
		"hours":  time.Hour,
		"d":      day,
		"day":    day,
		"days":   day,
		"w":      week,
		"wk":     week,
		"wks":    week,
		"week":   week,
		"weeks":  week,
		"mo":     30 * day,
		"month":  30 * day,
		"months": 30 * day,
		"y":      365 * day,
		"year":   365 * day,
		"years":  365 * day,
	}
)

// ParseWindow parses a window such as "1w", "3d" or "1w2d" and returns its
// duration with a canonical label. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	remaining := strings.ToLower(trimmed)
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("timeutil: invalid window segment %q", strings.TrimSpace(remaining))
		}

		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid window value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unsupported window unit %q", matches[2])
		}
		total += time.Duration(value) * base

		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: window must be greater than zero")
	}

	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration using week, day and hour tokens.
func FormatWindow(d time.Duration) string {
	if d < time.Hour {
		return "0h"
	}

	units := []struct {
		label string
		value time.Duration
	}{
		{"w", week},
		{"d", day},
		{"h", time.Hour},
	}

	var b strings.Builder
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		fmt.Fprintf(&b, "%d%s", count, u.label)
	}
	return b.String()
}

// DayRange converts a window into a start-inclusive, end-exclusive pair of day
// keys ending with today. Partial days round up, so "1w" covers today and the
// six days before it.
func DayRange(window string, now time.Time, loc *time.Location) (start, end string, err error) {
	d, _, err := ParseWindow(window)
	if err != nil {
		return "", "", err
	}
	days := int((d + day - 1) / day)
	today := task.DateOf(now, loc)
	if start, err = task.AddDays(today, 1-days); err != nil {
		return "", "", err
	}
	if end, err = task.AddDays(today, 1); err != nil {
		return "", "", err
	}
	return start, end, nil
}
