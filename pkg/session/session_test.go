package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

// Wednesday.
var noon = time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

func at(t time.Time, minutes int, category string) Session {
	return Session{Duration: minutes * 60, Category: category, EndTime: task.NewTimestamp(t)}
}

func newTimer(now *time.Time) *Timer {
	tm := NewTimer(store.NewMemory(), nil)
	tm.Now = func() time.Time { return *now }
	return tm
}

func TestTimerDefaults(t *testing.T) {
	now := noon
	st, err := newTimer(&now).Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.IsRunning)
	assert.Nil(t, st.EndTime)
	assert.Equal(t, 25*60, st.Duration)
	assert.Equal(t, DefaultDuration, st.Remaining)
}

func TestTimerRunsToCompletion(t *testing.T) {
	ctx := context.Background()
	now := noon
	tm := newTimer(&now)

	st, err := tm.Start(ctx, 30*time.Minute, "Work")
	require.NoError(t, err)
	assert.True(t, st.IsRunning)
	assert.Equal(t, 30*time.Minute, st.Remaining)

	now = noon.Add(10 * time.Minute)
	s, err := tm.Tick(ctx)
	require.NoError(t, err)
	assert.Nil(t, s, "still running")
	st, err = tm.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Minute, st.Remaining)

	now = noon.Add(30 * time.Minute)
	s, err = tm.Tick(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 1800, s.Duration)
	assert.Equal(t, "Work", s.Category)

	st, err = tm.Status(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsRunning)

	again, err := tm.Tick(ctx)
	require.NoError(t, err)
	assert.Nil(t, again, "finished sessions are logged once")

	sessions, err := tm.Log.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestTimerStopDoesNotLog(t *testing.T) {
	ctx := context.Background()
	now := noon
	tm := newTimer(&now)
	_, err := tm.Start(ctx, time.Minute, "")
	require.NoError(t, err)
	_, err = tm.Stop(ctx)
	require.NoError(t, err)

	now = noon.Add(time.Hour)
	s, err := tm.Tick(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
	sessions, err := tm.Log.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestTimerUncategorizedAndReset(t *testing.T) {
	ctx := context.Background()
	now := noon
	tm := newTimer(&now)
	_, err := tm.Start(ctx, time.Minute, "")
	require.NoError(t, err)
	now = noon.Add(time.Minute)
	s, err := tm.Tick(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, Uncategorized, s.Category)

	st, err := tm.Reset(ctx, 50*time.Minute)
	require.NoError(t, err)
	assert.False(t, st.IsRunning)
	assert.Nil(t, st.EndTime)
	assert.Equal(t, 3000, st.Duration)
}

func TestLogReadsEpochMillis(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, map[string][]byte{
		KeySessions: []byte(`[{"duration":1500,"category":"Work","endTime":1710331200000}]`),
	}))
	sessions, err := NewLog(s, nil).List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].EndTime.Equal(noon))
	assert.Equal(t, 25.0, sessions[0].Minutes())
}

func TestLogRejectsEmptySession(t *testing.T) {
	err := NewLog(store.NewMemory(), nil).Append(context.Background(), Session{})
	require.Error(t, err)
}

func TestIntensity(t *testing.T) {
	for minutes, want := range map[float64]int{0: 0, 1: 1, 29.9: 1, 30: 2, 59: 2, 60: 3, 119: 3, 120: 4, 600: 4} {
		assert.Equal(t, want, Intensity(minutes), "minutes=%v", minutes)
	}
}

func TestHeatmapCoversLastYear(t *testing.T) {
	sessions := []Session{
		at(noon, 25, "Work"),
		at(noon.Add(-time.Hour), 25, "Work"),
		at(noon.AddDate(-2, 0, 0), 25, "Work"),
	}
	h := NewHeatmap(sessions, noon, time.UTC)
	dates := h.Dates()
	assert.Equal(t, "2023-03-13", dates[0])
	assert.Equal(t, "2024-03-13", dates[len(dates)-1])
	assert.Len(t, h, 367, "2024 is a leap year")
	assert.Equal(t, 50.0, h["2024-03-13"])
}

func TestStreaks(t *testing.T) {
	h := Heatmap{
		"2024-03-06": 30,
		"2024-03-07": 30,
		"2024-03-08": 30,
		"2024-03-09": 0,
		"2024-03-10": 20.4,
		"2024-03-11": 0,
		"2024-03-12": 45,
		"2024-03-13": 25,
	}
	st := NewStreaks(h, "2024-03-13")
	assert.Equal(t, Streaks{Current: 2, Longest: 3, TotalDays: 6, TotalMinutes: 180}, st)

	h["2024-03-13"] = 0
	assert.Equal(t, 0, NewStreaks(h, "2024-03-13").Current)
}

func TestTotalsWeekStartsSunday(t *testing.T) {
	sessions := []Session{
		at(noon, 30, "Work"),
		at(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), 60, "Work"), // Sunday
		at(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC), 90, "Work"), // Saturday
	}
	got := NewTotals(sessions, noon, time.UTC)
	assert.Equal(t, Totals{TodayMinutes: 30, WeekMinutes: 90}, got)
}

func TestAggregate(t *testing.T) {
	sessions := []Session{
		at(noon, 30, "Work"),
		at(noon.AddDate(0, 0, -1), 60, "Learning"),
		at(noon.AddDate(0, -1, 0), 15, ""),
		at(noon.AddDate(-1, 0, 0), 45, "Work"),
	}
	assert.Equal(t, map[string]float64{"Work": 30}, Aggregate(sessions, UnitDay, noon, time.UTC))
	assert.Equal(t, map[string]float64{"Work": 30, "Learning": 60}, Aggregate(sessions, UnitMonth, noon, time.UTC))
	assert.Equal(t, map[string]float64{"Work": 30, "Learning": 60, Uncategorized: 15}, Aggregate(sessions, UnitYear, noon, time.UTC))

	_, err := ParseUnit("fortnight")
	require.Error(t, err)
}

func TestCategories(t *testing.T) {
	sessions := []Session{at(noon, 1, "Writing"), at(noon, 1, Uncategorized), at(noon, 1, " "), at(noon, 1, "Work")}
	assert.Equal(t, []string{"Learning", "Research", "Volunteering", "Work", "Writing"}, Categories(sessions))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
	assert.Equal(t, "2h", FormatMinutes(119.8))
}
