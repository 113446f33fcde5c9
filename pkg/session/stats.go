package session

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"tableflip.dev/focus/pkg/task"
)

// DefaultCategories are always offered, whether or not a session used them.
var DefaultCategories = []string{"Research", "Learning", "Work", "Volunteering"}

// Heatmap maps day keys to focused minutes.
type Heatmap map[string]float64

// Dates returns the heatmap's days in ascending order.
func (h Heatmap) Dates() []string {
	dates := make([]string, 0, len(h))
	for d := range h {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// NewHeatmap returns focused minutes for every day from one year before now
// through today, in loc. Sessions outside the window are ignored.
func NewHeatmap(sessions []Session, now time.Time, loc *time.Location) Heatmap {
	now = now.In(loc)
	today := startOfDay(now)
	h := Heatmap{}
	for d := today.AddDate(-1, 0, 0); !d.After(today); d = d.AddDate(0, 0, 1) {
		h[d.Format(task.DateLayout)] = 0
	}
	for _, s := range sessions {
		key := task.DateOf(s.EndTime.Time, loc)
		if _, ok := h[key]; ok {
			h[key] += s.Minutes()
		}
	}
	return h
}

// Intensity buckets a day's minutes into heatmap levels 0 through 4.
func Intensity(minutes float64) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes < 30:
		return 1
	case minutes < 60:
		return 2
	case minutes < 120:
		return 3
	default:
		return 4
	}
}

// Streaks summarizes consecutive active days.
type Streaks struct {
	Current      int `json:"currentStreak"`
	Longest      int `json:"longestStreak"`
	TotalDays    int `json:"totalDays"`
	TotalMinutes int `json:"totalMinutes"`
}

// NewStreaks computes streaks over h. The current streak counts active days
// ending today and is zero when today has no focus time.
func NewStreaks(h Heatmap, today string) Streaks {
	dates := h.Dates()
	var st Streaks

	for i := len(dates) - 1; i >= 0; i-- {
		date := dates[i]
		if date > today {
			continue
		}
		if h[date] <= 0 {
			break
		}
		if date != today && st.Current == 0 {
			break
		}
		st.Current++
	}

	run := 0
	total := 0.0
	for _, date := range dates {
		minutes := h[date]
		total += minutes
		if minutes > 0 {
			st.TotalDays++
			run++
			if run > st.Longest {
				st.Longest = run
			}
		} else {
			run = 0
		}
	}
	st.TotalMinutes = int(math.Round(total))
	return st
}

// Totals is the focused time of today and of the current week.
type Totals struct {
	TodayMinutes float64 `json:"todayMinutes"`
	WeekMinutes  float64 `json:"weekMinutes"`
}

// NewTotals sums session minutes for today and for the week so far. Weeks
// start on Sunday.
func NewTotals(sessions []Session, now time.Time, loc *time.Location) Totals {
	today := startOfDay(now.In(loc))
	week := today.AddDate(0, 0, -int(today.Weekday()))
	var t Totals
	for _, s := range sessions {
		end := s.EndTime.In(loc)
		if !end.Before(today) {
			t.TodayMinutes += s.Minutes()
		}
		if !end.Before(week) {
			t.WeekMinutes += s.Minutes()
		}
	}
	return t
}

// Unit is an aggregation period.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

// ParseUnit accepts day, week, month or year.
func ParseUnit(raw string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(raw))); u {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return u, nil
	case "":
		return UnitDay, nil
	}
	return "", fmt.Errorf("session: unknown unit %q", raw)
}

// Start returns the beginning of the period containing now.
func (u Unit) Start(now time.Time, loc *time.Location) time.Time {
	today := startOfDay(now.In(loc))
	switch u {
	case UnitWeek:
		return today.AddDate(0, 0, -int(today.Weekday()))
	case UnitMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
	case UnitYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc)
	default:
		return today
	}
}

// Aggregate sums minutes per category for sessions in the period containing
// now.
func Aggregate(sessions []Session, u Unit, now time.Time, loc *time.Location) map[string]float64 {
	out := map[string]float64{}
	for _, s := range Since(sessions, u.Start(now, loc)) {
		category := s.Category
		if category == "" {
			category = Uncategorized
		}
		out[category] += s.Minutes()
	}
	return out
}

// Categories returns the default categories merged with every category used
// by a session, sorted.
func Categories(sessions []Session) []string {
	seen := map[string]struct{}{}
	for _, c := range DefaultCategories {
		seen[c] = struct{}{}
	}
	for _, s := range sessions {
		c := strings.TrimSpace(s.Category)
		if c == "" || c == Uncategorized {
			continue
		}
		seen[c] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// FormatMinutes renders minutes as "45m", "2h" or "1h 30m".
func FormatMinutes(minutes float64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", int(math.Round(minutes)))
	}
	hours := int(minutes / 60)
	rest := int(math.Round(math.Mod(minutes, 60)))
	if rest == 60 {
		hours++
		rest = 0
	}
	if rest == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Summary bundles the statistics shown next to the timer.
type Summary struct {
	Totals
	Streaks    Streaks            `json:"streaks"`
	Unit       Unit               `json:"unit"`
	ByCategory map[string]float64 `json:"byCategory"`
	Heatmap    Heatmap            `json:"heatmap,omitempty"`
}

// Summarize computes every statistic for sessions as of now. The heatmap is
// included only when withHeatmap is set.
func Summarize(sessions []Session, u Unit, now time.Time, loc *time.Location, withHeatmap bool) Summary {
	h := NewHeatmap(sessions, now, loc)
	sum := Summary{
		Totals:     NewTotals(sessions, now, loc),
		Streaks:    NewStreaks(h, task.DateOf(now, loc)),
		Unit:       u,
		ByCategory: Aggregate(sessions, u, now, loc),
	}
	if withHeatmap {
		sum.Heatmap = h
	}
	return sum
}
