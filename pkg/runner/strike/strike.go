// Package strike provides the runner that removes a task from today's board.
package strike

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/runner/complete"
	"tableflip.dev/focus/pkg/runner/get"
)

type Strike struct {
	ID    string
	Tasks *app.Service
	Out   io.Writer
}

func (n *Strike) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not strike, no task service")
	}

	found, err := n.Tasks.DeleteTask(ctx, n.ID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", complete.ErrNotFound, n.ID)
	}

	g := get.Get{Tasks: n.Tasks, ShowID: true, Out: n.Out}
	return g.Do(ctx)
}
