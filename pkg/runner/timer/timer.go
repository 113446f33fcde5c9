// Package timer provides the runner for the focus countdown.
package timer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/printers"
	"tableflip.dev/focus/pkg/session"
)

// Actions accepted by Timer.
const (
	ActionStart  = "start"
	ActionStop   = "stop"
	ActionReset  = "reset"
	ActionStatus = "status"
	ActionTick   = "tick"
)

// Timer drives the countdown. Duration zero means the timer's default.
type Timer struct {
	Timer    *session.Timer
	Action   string
	Duration time.Duration
	Category string
	Format   string
	Out      io.Writer
}

func (n *Timer) Do(ctx context.Context) error {
	if n.Timer == nil {
		return errors.New("can not run timer, no timer configured")
	}
	format, err := printers.ParseFormat(n.Format)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}

	var st session.Status
	switch strings.ToLower(n.Action) {
	case ActionStart:
		st, err = n.Timer.Start(ctx, n.Duration, strings.TrimSpace(n.Category))
	case ActionStop:
		st, err = n.Timer.Stop(ctx)
	case ActionReset:
		st, err = n.Timer.Reset(ctx, n.Duration)
	case "", ActionStatus:
		st, err = n.Timer.Status(ctx)
	case ActionTick:
		var logged *session.Session
		if logged, err = n.Timer.Tick(ctx); err != nil {
			return err
		}
		if logged != nil && format == printers.FormatText {
			_, _ = color.New(color.FgGreen).Fprintf(pp.Writer(), "logged %s of %s\n",
				session.FormatMinutes(logged.Minutes()), logged.Category)
		}
		st, err = n.Timer.Status(ctx)
	default:
		return fmt.Errorf("unknown timer action %q", n.Action)
	}
	if err != nil {
		return err
	}

	if format != printers.FormatText {
		return printers.Encode(pp.Writer(), format, map[string]any{
			"isRunning":        st.IsRunning,
			"remainingSeconds": int(st.Remaining.Round(time.Second) / time.Second),
			"duration":         st.Duration,
			"category":         st.Category,
		})
	}
	pp.Timer(st)
	return nil
}
