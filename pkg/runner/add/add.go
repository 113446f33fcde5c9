// Package add provides the runner that puts a task on today's board.
package add

import (
	"context"
	"errors"
	"io"
	"strings"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/runner/get"
	"tableflip.dev/focus/pkg/task"
)

type Add struct {
	Tasks    *app.Service
	Priority string
	Text     string
	Category string
	ShowID   bool
	Out      io.Writer
}

// Do adds the task and reprints today's board.
func (n *Add) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not add, no task service")
	}
	text := strings.TrimSpace(n.Text)
	if text == "" {
		return errors.New("requires task text")
	}
	p, err := task.ParsePriority(n.Priority)
	if err != nil {
		return err
	}
	if _, err := n.Tasks.AddTask(ctx, p, text, strings.TrimSpace(n.Category)); err != nil {
		return err
	}

	g := get.Get{Tasks: n.Tasks, ShowID: n.ShowID, Out: n.Out}
	return g.Do(ctx)
}
