// Package scratch provides the runner for the scratchpad note.
package scratch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/focus/pkg/printers"
	"tableflip.dev/focus/pkg/scratchpad"
)

// Scratch prints the note, or replaces it when Text is set.
type Scratch struct {
	Pad  *scratchpad.Pad
	Text *string
	Out  io.Writer
}

func (n *Scratch) Do(ctx context.Context) error {
	if n.Pad == nil {
		return errors.New("can not use scratchpad, no store")
	}
	if n.Text != nil {
		return n.Pad.Set(ctx, *n.Text)
	}
	text, err := n.Pad.Get(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	_, err = fmt.Fprintln(pp.Writer(), text)
	return err
}
