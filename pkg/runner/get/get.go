// Package get provides the runner that prints today's board.
package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/printers"
)

// Get prints today's board after carry-over, or only the tasks finished today
// when Completed is set.
type Get struct {
	Tasks     *app.Service
	ShowID    bool
	Completed bool
	// Format is text, json or yaml.
	Format string
	Out    io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not get, no task service")
	}
	format, err := printers.ParseFormat(n.Format)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	if n.Completed {
		done, err := n.Tasks.TodaysCompletedTasks(ctx)
		if err != nil {
			return err
		}
		if format != printers.FormatText {
			return printers.Encode(pp.Writer(), format, done)
		}
		pp.NewLine()
		pp.TitleWithCount("Done "+n.Tasks.Today(), len(done))
		pp.Tasks(done...)
		return nil
	}

	b, err := n.Tasks.TodaysTasks(ctx)
	if err != nil {
		return err
	}
	if format != printers.FormatText {
		return printers.Encode(pp.Writer(), format, b)
	}
	pp.NewLine()
	pp.Board(n.Tasks.Today(), b)
	return nil
}
