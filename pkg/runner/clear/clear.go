// Package clear provides the runner that wipes the board and the archive.
package clear

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/printers"
)

// ErrNotConfirmed is returned when the user declines, or when confirmation is
// needed but stdin is not a terminal.
var ErrNotConfirmed = errors.New("clear not confirmed, pass --yes to skip the prompt")

// Clear removes every task, the archive and both markers.
type Clear struct {
	Tasks *app.Service
	// Yes skips the confirmation prompt.
	Yes bool
	// Confirm asks the user. Defaults to a promptui confirmation on a TTY.
	Confirm func(label string) (bool, error)
	Out     io.Writer
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not clear, no task service")
	}
	if !n.Yes {
		confirm := n.Confirm
		if confirm == nil {
			confirm = promptConfirm
		}
		ok, err := confirm("Delete every task and the whole archive")
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotConfirmed
		}
	}

	if err := n.Tasks.ClearAllTasks(ctx); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	_, _ = color.New(color.Faint).Fprintln(pp.Writer(), "cleared all tasks")
	return nil
}

func promptConfirm(label string) (bool, error) {
	if !printers.IsTerminal(os.Stdin) {
		return false, nil
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}
