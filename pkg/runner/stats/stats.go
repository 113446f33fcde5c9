// Package stats provides the runner that summarizes logged focus sessions.
package stats

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/focus/pkg/printers"
	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/task"
)

// Stats prints streaks, totals, per-category minutes and optionally the
// year heatmap and this month's calendar.
type Stats struct {
	Log      *session.Log
	Unit     string
	Heatmap  bool
	Calendar bool
	// Plain renders the heatmap without color.
	Plain    bool
	Now      func() time.Time
	Location *time.Location
	Format   string
	Out      io.Writer
}

func (n *Stats) Do(ctx context.Context) error {
	if n.Log == nil {
		return errors.New("can not get stats, no session log")
	}
	format, err := printers.ParseFormat(n.Format)
	if err != nil {
		return err
	}
	unit, err := session.ParseUnit(n.Unit)
	if err != nil {
		return err
	}
	sessions, err := n.Log.List(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	loc := n.Location
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	sum := session.Summarize(sessions, unit, now, loc, n.Heatmap || n.Calendar)

	pp := printers.PrettyPrint{Out: n.Out}
	if format != printers.FormatText {
		if !n.Heatmap {
			sum.Heatmap = nil
		}
		return printers.Encode(pp.Writer(), format, sum)
	}

	pp.NewLine()
	pp.Summary(sum)
	if n.Calendar {
		pp.Month(now, sum.Heatmap, task.DateOf(now, loc))
	}
	if n.Heatmap {
		return pp.Heatmap(sum.Heatmap, n.Plain)
	}
	return nil
}
