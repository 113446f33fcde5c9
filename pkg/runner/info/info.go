// Package info provides the runner that describes the configuration in use.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/store"
)

type Info struct {
	Config *store.Config
	Tasks  *app.Service
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("FOCUS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "FOCUS_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "FOCUS_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("backend"), n.Config.Backend)
	tbl.AddRow(bold.Sprint("path"), n.Config.Path)
	if n.Config.Backend == store.BackendNATS {
		tbl.AddRow(bold.Sprint("nats.url"), n.Config.NATSURL)
		tbl.AddRow(bold.Sprint("nats.bucket"), n.Config.NATSBucket)
	}
	tbl.AddRow(bold.Sprint("location"), n.Config.Location.String())
	tbl.AddRow(bold.Sprint("listen"), n.Config.Listen)
	tbl.AddRow(bold.Sprint("timer.duration"), n.Config.TimerDuration.String())
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)

	if n.Tasks == nil {
		return errors.New("failed to create task service")
	}

	all, err := n.Tasks.AllTasks(ctx)
	if err != nil {
		return err
	}
	archived := 0
	for _, e := range all.History {
		archived += len(e.Tasks)
	}
	_, _ = fmt.Fprintf(out, "\nToday (%s): %d open, %d done\n",
		n.Tasks.Today(), len(all.Today.Incomplete()), len(all.Today.Completed()))
	_, _ = fmt.Fprintf(out, "Archive: %d entries, %d tasks\n", len(all.History), archived)
	return nil
}
