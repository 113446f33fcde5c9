// Package complete provides the runner logic for marking tasks complete.
package complete

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/runner/get"
)

// ErrNotFound is returned when today's board has no task with the id.
var ErrNotFound = errors.New("no task with that id on today's board")

// Complete marks a task as completed, or reopens it when Undo is set.
type Complete struct {
	ID    string
	Undo  bool
	Tasks *app.Service
	Out   io.Writer
}

// Do executes the operation for the configured task ID and reprints the board.
func (n *Complete) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not complete, no task service")
	}

	op := n.Tasks.CompleteTask
	if n.Undo {
		op = n.Tasks.UncompleteTask
	}
	found, err := op(ctx, n.ID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, n.ID)
	}

	g := get.Get{Tasks: n.Tasks, ShowID: true, Out: n.Out}
	return g.Do(ctx)
}
