// Package edit provides the runner that rewrites a task's text or category.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/runner/complete"
	"tableflip.dev/focus/pkg/runner/get"
	"tableflip.dev/focus/pkg/task"
)

// Edit applies the non-nil fields to the task.
type Edit struct {
	ID       string
	Text     *string
	Category *string
	Tasks    *app.Service
	Out      io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not edit, no task service")
	}
	patch := task.Patch{Text: n.Text, Category: n.Category}
	if patch.Empty() {
		return errors.New("nothing to change, use --text or --category")
	}

	found, err := n.Tasks.UpdateTask(ctx, n.ID, patch)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", complete.ErrNotFound, n.ID)
	}

	g := get.Get{Tasks: n.Tasks, ShowID: true, Out: n.Out}
	return g.Do(ctx)
}
