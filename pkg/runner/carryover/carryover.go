// Package carryover provides the runner that copies unfinished work forward.
package carryover

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/runner/get"
)

// CarryOver runs carry-over for today and prints the board.
type CarryOver struct {
	Tasks *app.Service
	Out   io.Writer
}

func (n *CarryOver) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not carry over, no task service")
	}
	carried, err := n.Tasks.CarryOverIncompleteTasks(ctx)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = color.New(color.Faint).Fprintf(out, "carried %d task(s) to %s\n", carried, n.Tasks.Today())

	g := get.Get{Tasks: n.Tasks, Out: n.Out}
	return g.Do(ctx)
}
