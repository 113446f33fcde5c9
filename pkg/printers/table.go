package printers

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/focus/pkg/session"
)

// Summary prints streaks, totals and per-category minutes.
func (pp *PrettyPrint) Summary(s session.Summary) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Today"), session.FormatMinutes(s.Totals.TodayMinutes))
	tbl.AddRow(bold.Sprint("This week"), session.FormatMinutes(s.Totals.WeekMinutes))
	tbl.AddRow(bold.Sprint("Current streak"), days(s.Streaks.Current))
	tbl.AddRow(bold.Sprint("Longest streak"), days(s.Streaks.Longest))
	tbl.AddRow(bold.Sprint("Active days"), days(s.Streaks.TotalDays))
	tbl.AddRow(bold.Sprint("Total"), session.FormatMinutes(float64(s.Streaks.TotalMinutes)))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	pp.Title(fmt.Sprintf("By category (this %s)", s.Unit))
	if len(s.ByCategory) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
		return
	}
	names := make([]string, 0, len(s.ByCategory))
	for name := range s.ByCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.ByCategory[names[i]] != s.ByCategory[names[j]] {
			return s.ByCategory[names[i]] > s.ByCategory[names[j]]
		}
		return names[i] < names[j]
	})

	cats := uitable.New()
	cats.Separator = "  "
	for _, name := range names {
		cats.AddRow(name, session.FormatMinutes(s.ByCategory[name]))
	}
	cats.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), cats)
	pp.NewLine()
}

// Timer prints the timer state.
func (pp *PrettyPrint) Timer(st session.Status) {
	bold := color.New(color.Bold)

	state := color.New(color.Faint).Sprint("idle")
	if st.IsRunning {
		state = color.New(color.FgGreen).Sprint("running")
	}

	category := st.Category
	if category == "" {
		category = session.Uncategorized
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Timer"), state)
	tbl.AddRow(bold.Sprint("Remaining"), clock(st.Remaining))
	tbl.AddRow(bold.Sprint("Category"), category)
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}
