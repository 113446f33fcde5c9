package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

func seededLog(t *testing.T, now time.Time) *session.Log {
	t.Helper()
	log := session.NewLog(store.NewMemory(), nil)
	for i, category := range []string{"Writing", "Writing", "Reading"} {
		end := now.AddDate(0, 0, -i)
		s := session.Session{Duration: 1500, Category: category, EndTime: task.NewTimestamp(end)}
		if err := log.Append(context.Background(), s); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	return log
}

func TestStatsJSON(t *testing.T) {
	now := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	s := Stats{
		Log:      seededLog(t, now),
		Unit:     "week",
		Now:      func() time.Time { return now },
		Location: time.UTC,
		Format:   "json",
		Out:      &buf,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	var sum session.Summary
	if err := json.Unmarshal(buf.Bytes(), &sum); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if sum.Streaks.Current != 3 || sum.TodayMinutes != 25 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.ByCategory["Writing"] != 50 || sum.ByCategory["Reading"] != 25 {
		t.Fatalf("unexpected categories %v", sum.ByCategory)
	}
	if sum.Heatmap != nil {
		t.Fatalf("heatmap should be omitted unless requested")
	}
}

func TestStatsTextWithPlainHeatmap(t *testing.T) {
	color.NoColor = true
	now := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	s := Stats{
		Log:      seededLog(t, now),
		Heatmap:  true,
		Calendar: true,
		Plain:    true,
		Now:      func() time.Time { return now },
		Location: time.UTC,
		Out:      &buf,
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Current streak", "Writing", "March"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStatsRejectsUnit(t *testing.T) {
	s := Stats{Log: session.NewLog(store.NewMemory(), nil), Unit: "decade"}
	if err := s.Do(context.Background()); err == nil {
		t.Fatalf("expected error for unknown unit")
	}
}
