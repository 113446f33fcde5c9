package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/task"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a calendar of then's month with focused days in bold and
// today underlined.
func (pp *PrettyPrint) Month(then time.Time, h session.Heatmap, today string) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = color.New(color.Faint).Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	idle := color.New(color.Faint, color.FgWhite)
	active := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < DaysIn(then); i++ {
		day := time.Date(then.Year(), then.Month(), i+1, 12, 0, 0, 0, then.Location())
		key := task.DateOf(day, then.Location())

		printer := idle
		if h[key] > 0 {
			printer = active
		}
		if key == today {
			printer = color.New(color.Bold, color.Underline)
		}
		_, _ = printer.Fprintf(pp.out(), "%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// DaysIn returns the number of days in then's month.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay returns the weekday of the first of then's month.
func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
