package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/task"
)

func init() {
	color.NoColor = true
}

func TestBoardPrintsEveryPriority(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}

	b := task.NewDayBucket()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	b[task.UrgentImportant] = []task.Task{task.New("a", task.UrgentImportant, "Write the report", "Work", "2024-03-10", now)}
	done := task.New("b", task.ManagementItems, "Inbox zero", "", "2024-03-10", now)
	done.Completed = true
	b[task.ManagementItems] = []task.Task{done}

	pp.Board("2024-03-10", b)
	out := buf.String()

	for _, want := range []string{"2024-03-10", "Urgent & Important (1/1)", "Urgent, Less Important (0/2)", "Management Items (1/3)", "• Write the report", "[Work]", "✓ Inbox zero", "none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTasksWrapsLongText(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 10}

	tk := task.New("a", task.UrgentImportant, "one two three four", "Work", "2024-03-10", time.Now())
	tk.CarriedFrom = "2024-03-09"
	pp.Tasks(tk)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped output, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "↻ 2024-03-09") {
		t.Fatalf("expected carried marker on first line, got %q", lines[0])
	}
}

func TestArchiveEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Archive()
	if !strings.Contains(buf.String(), "no archived tasks") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPaletteBlendsEndpoints(t *testing.T) {
	p, err := Palette("#000000", "#ffffff", 5)
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}
	if len(p) != 5 {
		t.Fatalf("expected 5 colors, got %d", len(p))
	}
	if p[0] != "#000000" || p[4] != "#ffffff" {
		t.Fatalf("unexpected endpoints %v", p)
	}
	if _, err := Palette("nope", "#ffffff", 2); err == nil {
		t.Fatalf("expected error for bad hex")
	}
}

func TestHeatmapPlainGrid(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}

	// 2024-03-03 is a Sunday.
	h := session.Heatmap{
		"2024-03-03": 0,
		"2024-03-04": 20,
		"2024-03-05": 45,
		"2024-03-06": 90,
		"2024-03-07": 200,
	}
	if err := pp.Heatmap(h, true); err != nil {
		t.Fatalf("Heatmap failed: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	want := []string{"S ·", "M ░", "T ▒", "W ▓", "T █", "F  ", "S  "}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("row %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestMonthMarksToday(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	then := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	pp.Month(then, session.Heatmap{"2024-02-10": 30}, "2024-02-10")
	out := buf.String()
	if !strings.Contains(out, "February 2024") || !strings.Contains(out, "29") {
		t.Fatalf("unexpected calendar:\n%s", out)
	}
}

func TestSummaryAndTimer(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Summary(session.Summary{
		Totals:     session.Totals{TodayMinutes: 50, WeekMinutes: 90},
		Streaks:    session.Streaks{Current: 1, Longest: 3, TotalDays: 4, TotalMinutes: 200},
		Unit:       session.UnitWeek,
		ByCategory: map[string]float64{"Work": 90, "Research": 30},
	})
	pp.Timer(session.Status{Remaining: 90 * time.Second})
	out := buf.String()
	for _, want := range []string{"50m", "1h 30m", "1 day", "3 days", "By category (this week)", "01:30", "idle", session.Uncategorized} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "Work") > strings.Index(out, "Research") {
		t.Fatalf("expected categories sorted by minutes:\n%s", out)
	}
}

func TestEncode(t *testing.T) {
	v := map[string]any{"date": "2024-03-10", "count": 2}

	var js bytes.Buffer
	if err := Encode(&js, FormatJSON, v); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"date": "2024-03-10"`) {
		t.Fatalf("unexpected json %q", js.String())
	}

	var ym bytes.Buffer
	if err := Encode(&ym, FormatYAML, v); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(ym.String(), "date:") || !strings.Contains(ym.String(), "2024-03-10") {
		t.Fatalf("unexpected yaml %q", ym.String())
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
	if f, _ := ParseFormat(""); f != FormatText {
		t.Fatalf("expected text default, got %s", f)
	}
}
