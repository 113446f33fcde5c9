// Package printers renders the task board, history and focus statistics for
// the terminal.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/focus/pkg/task"
)

// DefaultWidth is the wrap width for task text.
const DefaultWidth = 60

type PrettyPrint struct {
	ShowID bool
	// Width wraps task text. Zero means DefaultWidth.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("00000000-0000-0000-0000-000000000000  "))
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Writer returns Out, or color.Output when unset.
func (pp *PrettyPrint) Writer() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) out() io.Writer {
	return pp.Writer()
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return DefaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

// Board prints every priority of a day, in board order, with its capacity.
func (pp *PrettyPrint) Board(date string, b task.DayBucket) {
	pp.Title(date)
	pp.NewLine()
	f := color.New(color.Faint)
	h := color.New(color.Bold)
	for _, p := range b.Keys() {
		tasks := b[p]
		if pp.ShowID {
			_, _ = h.Fprint(pp.out(), spacing)
		}
		_, _ = h.Fprint(pp.out(), p.Label())
		if c := p.Capacity(); c > 0 {
			over := f
			if len(tasks) > c {
				over = color.New(color.FgRed)
			}
			_, _ = over.Fprintf(pp.out(), " (%d/%d)", len(tasks), c)
		}
		pp.NewLine()
		pp.Tasks(tasks...)
	}
}

// Tasks prints one line per task, wrapping long text under itself.
func (pp *PrettyPrint) Tasks(tasks ...task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.FgGreen, color.Faint)
	meta := color.New(color.Faint)

	for _, t := range tasks {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), t.ID)
			if pad := len(spacing) - len(t.ID); pad > 0 {
				_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
			} else {
				_, _ = y.Fprint(pp.out(), "  ")
			}
		}

		bullet, body := " •", color.New()
		if t.Completed {
			bullet, body = " ✓", done
		}
		lines := strings.Split(wordwrap.String(t.Text, pp.width()), "\n")
		_, _ = body.Fprintf(pp.out(), "%s %s", bullet, lines[0])
		_, _ = meta.Fprintf(pp.out(), "  [%s]", t.Category)
		if t.CarriedFrom != "" {
			_, _ = meta.Fprintf(pp.out(), " ↻ %s", t.CarriedFrom)
		}
		_, _ = fmt.Fprintln(pp.out(), "")
		for _, l := range lines[1:] {
			if pp.ShowID {
				_, _ = fmt.Fprint(pp.out(), spacing)
			}
			_, _ = body.Fprintf(pp.out(), "   %s\n", l)
		}
	}
	pp.NewLine()
}

// Archive prints archive entries oldest first.
func (pp *PrettyPrint) Archive(entries ...task.ArchiveEntry) {
	if len(entries) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), "no archived tasks\n\n")
		return
	}
	for _, e := range entries {
		pp.TitleWithCount(e.Date, len(e.Tasks))
		pp.Tasks(e.Tasks...)
	}
}
