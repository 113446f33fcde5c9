// Package history provides the runner that prints archived tasks.
package history

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/printers"
	"tableflip.dev/focus/pkg/timeutil"
)

// History prints archive entries with Since <= date < Until. When both are
// empty, Last selects a window ending today.
type History struct {
	Tasks  *app.Service
	Since  string
	Until  string
	Last   string
	Format string
	Out    io.Writer
}

func (n *History) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not get history, no task service")
	}
	format, err := printers.ParseFormat(n.Format)
	if err != nil {
		return err
	}

	start, end := n.Since, n.Until
	if start == "" && end == "" && n.Last != "" {
		now := n.Tasks.CurrentTime()
		start, end, err = timeutil.DayRange(n.Last, now, now.Location())
		if err != nil {
			return err
		}
	}

	entries, err := n.Tasks.TaskHistory(ctx, start, end)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if format != printers.FormatText {
		return printers.Encode(pp.Writer(), format, entries)
	}
	pp.NewLine()
	pp.Title(label(start, end))
	pp.NewLine()
	pp.Archive(entries...)
	return nil
}

func label(start, end string) string {
	switch {
	case start == "" && end == "":
		return "History"
	case end == "":
		return fmt.Sprintf("History since %s", start)
	case start == "":
		return fmt.Sprintf("History before %s", end)
	default:
		return fmt.Sprintf("History %s to %s", start, end)
	}
}
