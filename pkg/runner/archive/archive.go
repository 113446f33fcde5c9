// Package archive provides the runner that moves finished tasks into history.
package archive

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/printers"
	"tableflip.dev/focus/pkg/task"
)

// Archive moves the completed tasks of Date, or today when empty. With Check
// set it runs the once-a-day archive of yesterday instead.
type Archive struct {
	Tasks *app.Service
	Date  string
	Check bool
	Out   io.Writer
}

func (n *Archive) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not archive, no task service")
	}

	var (
		entry *task.ArchiveEntry
		err   error
	)
	if n.Check {
		entry, err = n.Tasks.CheckAndArchiveCompletedTasks(ctx)
	} else {
		entry, err = n.Tasks.ArchiveCompletedTasks(ctx, n.Date)
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if entry == nil {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.Writer(), "nothing to archive")
		return nil
	}
	pp.NewLine()
	pp.Archive(*entry)
	return nil
}
